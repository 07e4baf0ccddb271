package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/markbot/core/logger"
	"github.com/m3rciful/markbot/internal/watermark"
)

// ResultKind classifies the side effect the transport should perform.
type ResultKind int

const (
	// ResultAck asks the transport to acknowledge with text only.
	ResultAck ResultKind = iota
	// ResultImage carries a freshly composited photo.
	ResultImage
	// ResultLogoPreview carries raw logo bytes for preview.
	ResultLogoPreview
)

// Snapshot is an immutable view of a session taken after an event was
// applied, used by the transport to render captions and menus.
type Snapshot struct {
	Darkness      int
	Corner        watermark.Corner
	RawCorner     string
	HasCustomLogo bool
	AwaitingLogo  bool
}

// Result describes the outcome of a controller event.
type Result struct {
	Kind     ResultKind
	Image    []byte
	Settings Snapshot
}

// CompositeFunc matches the compositor entry point; it exists so tests can
// substitute the pipeline.
type CompositeFunc func(original []byte, darknessPercent int, logo []byte, corner watermark.Corner) ([]byte, error)

// ControllerOptions wire the controller's collaborators.
type ControllerOptions struct {
	Store       *Store
	Compositor  watermark.Compositor
	DefaultLogo []byte

	// Composite overrides the compositor entry point; nil uses
	// Compositor.Composite.
	Composite CompositeFunc
}

// Controller is the state machine that interprets photo and button events
// against the settings store and decides when to recomposite. All work for
// one user happens under that user's session lock, so events apply in
// arrival order.
type Controller struct {
	store       *Store
	composite   CompositeFunc
	defaultLogo []byte
}

// NewController builds a controller from options.
func NewController(opts ControllerOptions) *Controller {
	composite := opts.Composite
	if composite == nil {
		composite = opts.Compositor.Composite
	}
	return &Controller{
		store:       opts.Store,
		composite:   composite,
		defaultLogo: opts.DefaultLogo,
	}
}

func snapshot(s *Session) Snapshot {
	return Snapshot{
		Darkness:      s.Darkness,
		Corner:        s.EffectiveCorner(),
		RawCorner:     s.Corner,
		HasCustomLogo: s.CustomLogo != nil,
		AwaitingLogo:  s.AwaitingLogo,
	}
}

func (c *Controller) effectiveLogo(s *Session) []byte {
	if s.CustomLogo != nil {
		return s.CustomLogo
	}
	return c.defaultLogo
}

func (c *Controller) recomposite(ctx context.Context, s *Session) ([]byte, error) {
	start := time.Now()
	out, err := c.composite(s.LastOriginal, s.Darkness, c.effectiveLogo(s), s.EffectiveCorner())
	if err != nil {
		logger.Error(ctx, "service.watermark", "composite",
			slog.String("status", "fail"),
			slog.Int("darkness", s.Darkness),
			slog.String("corner", string(s.EffectiveCorner())),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	logger.Debug(ctx, "service.watermark", "composite",
		slog.String("status", "ok"),
		slog.Int("darkness", s.Darkness),
		slog.String("corner", string(s.EffectiveCorner())),
		slog.Int("bytes", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}

// Photo applies a photo-received event. While idle the photo becomes the
// cached original and is composited with the current settings; while
// awaiting a logo upload it becomes the custom logo instead and the cached
// original is left untouched. Undecodable input commits nothing.
func (c *Controller) Photo(ctx context.Context, userID int64, img []byte) (Result, error) {
	var (
		res Result
		err error
	)
	c.store.Update(userID, func(s *Session) {
		if s.AwaitingLogo {
			if err = watermark.Validate(img); err != nil {
				res = Result{Kind: ResultAck, Settings: snapshot(s)}
				return
			}
			s.SetCustomLogo(img)
			s.SetAwaitingLogo(false)
			logger.Debug(ctx, "service.sessions", "logo.stored",
				slog.String("status", "ok"),
				slog.Int("bytes", len(img)),
			)
			res = Result{Kind: ResultLogoPreview, Image: img, Settings: snapshot(s)}
			return
		}

		if err = watermark.Validate(img); err != nil {
			res = Result{Kind: ResultAck, Settings: snapshot(s)}
			return
		}
		s.SetOriginal(img)
		logger.Debug(ctx, "service.sessions", "original.stored",
			slog.String("status", "ok"),
			slog.Int("bytes", len(img)),
		)

		var out []byte
		if out, err = c.recomposite(ctx, s); err != nil {
			res = Result{Kind: ResultAck, Settings: snapshot(s)}
			return
		}
		res = Result{Kind: ResultImage, Image: out, Settings: snapshot(s)}
	})
	return res, err
}

// RequestLogoUpload enters the awaiting-logo mode.
func (c *Controller) RequestLogoUpload(ctx context.Context, userID int64) Result {
	var res Result
	c.store.Update(userID, func(s *Session) {
		s.SetAwaitingLogo(true)
		res = Result{Kind: ResultAck, Settings: snapshot(s)}
	})
	logger.Debug(ctx, "service.sessions", "logo.awaiting", slog.String("status", "ok"))
	return res
}

// CancelUpload leaves the awaiting-logo mode and previews the logo that is
// currently in effect.
func (c *Controller) CancelUpload(ctx context.Context, userID int64) Result {
	var res Result
	c.store.Update(userID, func(s *Session) {
		s.SetAwaitingLogo(false)
		res = Result{Kind: ResultLogoPreview, Image: c.effectiveLogo(s), Settings: snapshot(s)}
	})
	logger.Debug(ctx, "service.sessions", "logo.cancelled", slog.String("status", "ok"))
	return res
}

// ResetLogo discards the custom logo and previews the default asset.
func (c *Controller) ResetLogo(ctx context.Context, userID int64) Result {
	var res Result
	c.store.Update(userID, func(s *Session) {
		s.ClearCustomLogo()
		res = Result{Kind: ResultLogoPreview, Image: c.defaultLogo, Settings: snapshot(s)}
	})
	logger.Debug(ctx, "service.sessions", "logo.reset", slog.String("status", "ok"))
	return res
}

// SetDarkness stores the darkening percentage (clamped to [0,100]) and
// recomposites when an original is cached. The mutation survives a failed
// recomposition; the next successful composite re-derives a consistent view.
func (c *Controller) SetDarkness(ctx context.Context, userID int64, percent int) (Result, error) {
	return c.applySetting(ctx, userID, func(s *Session) { s.SetDarkness(percent) })
}

// SetCorner stores the placement anchor and recomposites when an original
// is cached. Unrecognized values are kept verbatim and normalize to
// bottom-left at use.
func (c *Controller) SetCorner(ctx context.Context, userID int64, corner string) (Result, error) {
	return c.applySetting(ctx, userID, func(s *Session) { s.SetCorner(corner) })
}

func (c *Controller) applySetting(ctx context.Context, userID int64, mutate func(*Session)) (Result, error) {
	var (
		res Result
		err error
	)
	c.store.Update(userID, func(s *Session) {
		mutate(s)
		if s.LastOriginal == nil {
			res = Result{Kind: ResultAck, Settings: snapshot(s)}
			return
		}
		var out []byte
		if out, err = c.recomposite(ctx, s); err != nil {
			res = Result{Kind: ResultAck, Settings: snapshot(s)}
			return
		}
		res = Result{Kind: ResultImage, Image: out, Settings: snapshot(s)}
	})
	return res, err
}

// Settings returns a view of the user's current session, creating it with
// defaults on first contact.
func (c *Controller) Settings(userID int64) Snapshot {
	s := c.store.Get(userID)
	return snapshot(&s)
}

// SessionCount reports how many sessions exist.
func (c *Controller) SessionCount() int {
	return c.store.Len()
}
