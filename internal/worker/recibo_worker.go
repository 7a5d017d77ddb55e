package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibos: renders the settlement receipt
// PDF and mails it to the customer.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/upstagebunion/craftzApp/internal/infra"
	"github.com/upstagebunion/craftzApp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	VentaID uuid.UUID `json:"venta_id"`
}

// ReciboWorker loads a settled sale, renders its receipt and sends it by
// email when the customer has an address on file.
type ReciboWorker struct {
	ventas      repository.VentaRepository
	mailer      *infra.Mailer
	negocio     string
	storagePath string
}

func NewReciboWorker(ventas repository.VentaRepository, mailer *infra.Mailer, negocio, storagePath string) *ReciboWorker {
	return &ReciboWorker{ventas: ventas, mailer: mailer, negocio: negocio, storagePath: storagePath}
}

// Process renders the receipt PDF and mails it as attachment.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	venta, err := w.ventas.FindByID(ctx, payload.VentaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID.String()).Msg("recibo_worker: sale not found")
		return
	}

	pdfPath, err := infra.GenerarReciboPDF(venta, w.negocio, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", venta.ID.String()).Msg("recibo_worker: failed to render receipt")
		return
	}

	if venta.Cliente == nil || venta.Cliente.Correo == nil || *venta.Cliente.Correo == "" {
		log.Warn().Str("venta_id", venta.ID.String()).Msg("recibo_worker: customer has no email — receipt stored only")
		return
	}

	subject := fmt.Sprintf("%s — Recibo de tu compra", w.negocio)
	body := fmt.Sprintf("Hola %s,\n\nTu venta quedó liquidada. Adjuntamos el recibo de tu compra.\n\n¡Gracias por tu preferencia!\n%s",
		venta.Cliente.Nombre, w.negocio)

	if err := w.mailer.SendRecibo(*venta.Cliente.Correo, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", *venta.Cliente.Correo).Msg("recibo_worker: failed to send email")
		return
	}
	log.Info().Str("to", *venta.Cliente.Correo).Str("venta_id", venta.ID.String()).Msg("recibo_worker: recibo sent successfully")
}
