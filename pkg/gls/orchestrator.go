package gls

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tournevent/gls/pkg/gls/unibox"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParcelAttempts bounds the fresh draws after storage-level parcel
// number collisions before the run fails with ErrParcelNumberExhausted.
const maxParcelAttempts = 5

// Store is the persistence boundary the orchestrator writes through. The
// backing store must enforce parcel-number uniqueness and surface a
// violation as ErrParcelNumberTaken.
type Store interface {
	FindShipment(ctx context.Context, id string) (*Shipment, error)
	SaveShipment(ctx context.Context, shipment *Shipment) error
	SavePackage(ctx context.Context, pkg *Package) error

	// Attach stores a rendered label artifact under the given name, linked
	// to the shipment.
	Attach(ctx context.Context, name string, data []byte, shipmentID string) error
}

// Renderer renders a named template with carrier response context into
// label document bytes.
type Renderer interface {
	Render(templatePath string, context map[string]string) ([]byte, error)
}

// Config holds orchestrator configuration.
type Config struct {
	Carrier  *CarrierConfig
	Template string // namespaced template path for the label document

	// Generator overrides the default parcel number source. Nil means a
	// fresh self-seeded generator.
	Generator *Generator
}

// Orchestrator drives label generation: validation, parcel-number
// assignment, the per-package carrier call, response validation and
// tracking-number commit. One instance is safe for concurrent use across
// shipments; the per-package loop within a shipment is strictly
// sequential because the sequence index is part of the wire request.
type Orchestrator struct {
	cfg       *CarrierConfig
	template  string
	store     Store
	client    unibox.APIClient
	renderer  Renderer
	generator *Generator
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// NewOrchestrator creates an orchestrator with the given collaborators.
func NewOrchestrator(cfg Config, store Store, client unibox.APIClient, renderer Renderer, logger *otelzap.Logger, tracer trace.Tracer) *Orchestrator {
	generator := cfg.Generator
	if generator == nil {
		generator = NewGenerator()
	}
	return &Orchestrator{
		cfg:       cfg.Carrier,
		template:  cfg.Template,
		store:     store,
		client:    client,
		renderer:  renderer,
		generator: generator,
		logger:    logger,
		tracer:    tracer,
	}
}

// GenerateLabels runs the label state machine for one shipment. Packages
// are labeled in sequence order; a package that already carries a tracking
// number is skipped, so a re-run after a partial failure only reprocesses
// the remainder.
func (o *Orchestrator) GenerateLabels(ctx context.Context, shipment *Shipment) error {
	if o.tracer != nil {
		var span trace.Span
		ctx, span = o.tracer.Start(ctx, "gls.GenerateLabels")
		defer span.End()
	}

	if shipment.State != StatePacked && shipment.State != StateDone {
		return newLabelError(CodeValidation, "shipment must be packed or done", shipment.ID,
			fmt.Errorf("%w: state %q", ErrInvalidState, shipment.State))
	}
	if shipment.CarrierMethod != CarrierMethod {
		return newLabelError(CodeValidation, "carrier method mismatch", shipment.ID,
			fmt.Errorf("%w: method %q", ErrWrongCarrier, shipment.CarrierMethod))
	}

	units := shipment.Units()
	implicit := len(shipment.Packages) == 0

	if shipment.TrackingNumber != "" && allLabeled(units) {
		o.logger.Info("Shipment already labeled, skipping",
			zap.String("shipment", shipment.ID),
			zap.String("tracking_number", shipment.TrackingNumber),
		)
		return nil
	}

	shipment.LabelStatus = LabelRequested

	for i, unit := range units {
		if unit.Labeled() {
			continue
		}

		if err := o.labelUnit(ctx, shipment, unit, i+1, implicit); err != nil {
			shipment.LabelStatus = LabelFailed
			// Best effort: a reloaded shipment should show the failed run,
			// not not_labeled.
			if saveErr := o.store.SaveShipment(ctx, shipment); saveErr != nil {
				o.logger.Warn("Persisting failed label status",
					zap.String("shipment", shipment.ID),
					zap.Error(saveErr),
				)
			}
			var le *LabelError
			if errors.As(err, &le) {
				le.Remaining = remainingUnits(units[i+1:])
			}
			return err
		}
	}

	first := units[0]
	if shipment.ParcelNumber == "" {
		shipment.ParcelNumber = first.ParcelNumber
	}
	if shipment.TrackingNumber == "" {
		shipment.TrackingNumber = first.TrackingNumber
	}
	shipment.LabelStatus = LabelLabeled

	if err := o.store.SaveShipment(ctx, shipment); err != nil {
		return newLabelError(CodePersistence, "saving labeled shipment", shipment.ID,
			fmt.Errorf("%w: %w", ErrInconsistentState, err))
	}

	o.logger.Info("Shipment labeled",
		zap.String("shipment", shipment.ID),
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.Int("units", len(units)),
	)
	return nil
}

// labelUnit labels one package (or the implicit shipment unit): parcel
// number assignment, carrier call, response validation, tracking commit
// and artifact rendering.
func (o *Orchestrator) labelUnit(ctx context.Context, shipment *Shipment, unit *Package, seq int, implicit bool) error {
	unitName := unit.Code
	if unitName == "" {
		unitName = shipment.ID
	}

	if err := o.ensureParcelNumber(ctx, shipment, unit, unitName, implicit); err != nil {
		return err
	}

	req, err := BuildRequest(shipment, unit, o.cfg)
	if err != nil {
		return newLabelError(CodeValidation, "building carrier request", unitName, err)
	}
	if req.ParcelSeq == "" {
		req.ParcelSeq = strconv.Itoa(seq)
	}

	raw, err := o.client.CreateLabel(ctx, req)
	if err != nil {
		o.logger.Error("Unibox call failed",
			zap.String("unit", unitName),
			zap.Error(err),
		)
		return newLabelError(CodeTransport, "carrier call failed", unitName, err)
	}

	resp, err := unibox.ParseResponse(raw)
	if err != nil {
		return newLabelError(CodeProtocol, "malformed carrier response", unitName, err)
	}
	tracking, ok := resp.TrackingNumber()
	if !ok {
		return newLabelError(CodeProtocol, "carrier response incomplete", unitName, ErrMissingTrackingNumber)
	}

	// The carrier has issued the label at this point. Everything below
	// must distinguish its failures from protocol faults: the remote
	// side-effect already happened.
	unit.TrackingNumber = tracking
	if err := o.saveUnit(ctx, shipment, unit, implicit); err != nil {
		return newLabelError(CodePersistence, "saving tracking number", unitName,
			fmt.Errorf("%w: %w", ErrInconsistentState, err))
	}

	data, err := o.renderer.Render(o.template, resp.Values)
	if err != nil {
		return newLabelError(CodePersistence, "rendering label artifact", unitName,
			fmt.Errorf("%w: %w", ErrInconsistentState, err))
	}
	if err := o.store.Attach(ctx, AttachmentName(tracking, unit.ParcelNumber, unit.Code), data, shipment.ID); err != nil {
		return newLabelError(CodePersistence, "storing label artifact", unitName,
			fmt.Errorf("%w: %w", ErrInconsistentState, err))
	}

	o.logger.Info("Unit labeled",
		zap.String("unit", unitName),
		zap.String("parcel_number", unit.ParcelNumber),
		zap.String("tracking_number", tracking),
	)
	return nil
}

// ensureParcelNumber assigns and persists a parcel number if the unit has
// none yet. A storage uniqueness rejection triggers a fresh draw, bounded
// by maxParcelAttempts.
func (o *Orchestrator) ensureParcelNumber(ctx context.Context, shipment *Shipment, unit *Package, unitName string, implicit bool) error {
	if unit.ParcelNumber != "" {
		return nil
	}

	depot := shipment.DepotNumber
	if depot == "" {
		depot = o.cfg.DepotNumber
	}

	for attempt := 1; attempt <= maxParcelAttempts; attempt++ {
		number, err := o.generator.Generate(depot, shipment.ServiceType)
		if err != nil {
			return newLabelError(CodeValidation, "generating parcel number", unitName, err)
		}

		unit.ParcelNumber = number
		err = o.saveUnit(ctx, shipment, unit, implicit)
		if err == nil {
			return nil
		}
		unit.ParcelNumber = ""
		if implicit {
			shipment.ParcelNumber = ""
		}

		if !errors.Is(err, ErrParcelNumberTaken) {
			return newLabelError(CodePersistence, "saving parcel number", unitName, err)
		}
		o.logger.Warn("Parcel number collision, redrawing",
			zap.String("unit", unitName),
			zap.Int("attempt", attempt),
		)
	}

	return newLabelError(CodeCollision, "parcel number retries exhausted", unitName, ErrParcelNumberExhausted)
}

// saveUnit persists the unit's numbers: through the package row, or through
// the shipment itself for the implicit single-unit case.
func (o *Orchestrator) saveUnit(ctx context.Context, shipment *Shipment, unit *Package, implicit bool) error {
	if implicit {
		shipment.ParcelNumber = unit.ParcelNumber
		shipment.TrackingNumber = unit.TrackingNumber
		return o.store.SaveShipment(ctx, shipment)
	}
	return o.store.SavePackage(ctx, unit)
}

// LabelAll labels independent shipments concurrently. The per-shipment
// loop stays sequential; only shipments run in parallel. The first error
// cancels the remaining shipments.
func (o *Orchestrator) LabelAll(ctx context.Context, shipments []*Shipment) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, shipment := range shipments {
		g.Go(func() error {
			return o.GenerateLabels(ctx, shipment)
		})
	}
	return g.Wait()
}

// AttachmentName is the deterministic artifact name for a labeled unit:
// "{tracking}_{parcel}.zpl", with the package code appended for
// per-package labels.
func AttachmentName(trackingNumber, parcelNumber, packageCode string) string {
	if packageCode == "" {
		return fmt.Sprintf("%s_%s.zpl", trackingNumber, parcelNumber)
	}
	return fmt.Sprintf("%s_%s_%s.zpl", trackingNumber, parcelNumber, packageCode)
}

func allLabeled(units []*Package) bool {
	for _, u := range units {
		if !u.Labeled() {
			return false
		}
	}
	return true
}

func remainingUnits(units []*Package) []string {
	codes := make([]string, 0, len(units))
	for _, u := range units {
		if !u.Labeled() {
			codes = append(codes, u.Code)
		}
	}
	return codes
}
