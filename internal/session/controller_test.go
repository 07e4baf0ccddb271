package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/markbot/internal/watermark"
)

func tinyPNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// compositeCall records what the pipeline was invoked with.
type compositeCall struct {
	original []byte
	darkness int
	logo     []byte
	corner   watermark.Corner
}

type fakeCompositor struct {
	calls []compositeCall
	err   error
}

func (f *fakeCompositor) composite(original []byte, darknessPercent int, logo []byte, corner watermark.Corner) ([]byte, error) {
	f.calls = append(f.calls, compositeCall{
		original: original,
		darkness: darknessPercent,
		logo:     logo,
		corner:   corner,
	})
	if f.err != nil {
		return nil, f.err
	}
	return []byte("composited"), nil
}

var defaultLogo = []byte("default-logo")

func newTestController(fake *fakeCompositor) *Controller {
	return NewController(ControllerOptions{
		Store:       NewStore(Defaults{Darkness: 60, Corner: "bottom-left"}),
		DefaultLogo: defaultLogo,
		Composite:   fake.composite,
	})
}

func TestPhotoComposites(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{R: 200, A: 255})

	res, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)
	assert.Equal(t, []byte("composited"), res.Image)
	assert.Equal(t, 60, res.Settings.Darkness)
	assert.Equal(t, watermark.CornerBottomLeft, res.Settings.Corner)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, photo, call.original)
	assert.Equal(t, 60, call.darkness)
	assert.Equal(t, defaultLogo, call.logo)
	assert.Equal(t, watermark.CornerBottomLeft, call.corner)
}

func TestPhotoRejectsUndecodable(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	res, err := ctrl.Photo(context.Background(), 1, []byte("not an image"))
	assert.ErrorIs(t, err, watermark.ErrDecode)
	assert.Equal(t, ResultAck, res.Kind)
	assert.Empty(t, fake.calls)

	// Nothing was committed: the next setting change has no original to replay.
	res, err = ctrl.SetDarkness(context.Background(), 1, 70)
	require.NoError(t, err)
	assert.Equal(t, ResultAck, res.Kind)
}

func TestSettingChangeWithoutPhotoAcks(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	res, err := ctrl.SetDarkness(context.Background(), 1, 40)
	require.NoError(t, err)
	assert.Equal(t, ResultAck, res.Kind)
	assert.Equal(t, 40, res.Settings.Darkness)

	res, err = ctrl.SetCorner(context.Background(), 1, "top-right")
	require.NoError(t, err)
	assert.Equal(t, ResultAck, res.Kind)
	assert.Equal(t, watermark.CornerTopRight, res.Settings.Corner)

	assert.Empty(t, fake.calls)
}

func TestSettingChangeRecomposites(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{G: 200, A: 255})

	_, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)

	res, err := ctrl.SetCorner(context.Background(), 1, "top-right")
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)

	res, err = ctrl.SetDarkness(context.Background(), 1, 80)
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)

	require.Len(t, fake.calls, 3)
	last := fake.calls[2]
	assert.Equal(t, photo, last.original)
	assert.Equal(t, 80, last.darkness)
	assert.Equal(t, watermark.CornerTopRight, last.corner)
}

func TestDarknessClampedThroughController(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	res, err := ctrl.SetDarkness(context.Background(), 1, 999)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Settings.Darkness)
}

func TestUnknownCornerFallsBack(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{B: 200, A: 255})

	_, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)

	res, err := ctrl.SetCorner(context.Background(), 1, "center")
	require.NoError(t, err)
	assert.Equal(t, "center", res.Settings.RawCorner)
	assert.Equal(t, watermark.CornerBottomLeft, res.Settings.Corner)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, watermark.CornerBottomLeft, fake.calls[1].corner)
}

func TestMutationSurvivesFailedRecompose(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{R: 10, A: 255})

	_, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)

	fake.err = errors.New("boom")
	res, err := ctrl.SetDarkness(context.Background(), 1, 80)
	assert.Error(t, err)
	assert.Equal(t, ResultAck, res.Kind)
	assert.Equal(t, 80, res.Settings.Darkness)

	// The next successful replay uses the stored value.
	fake.err = nil
	res, err = ctrl.SetCorner(context.Background(), 1, "top-left")
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)
	last := fake.calls[len(fake.calls)-1]
	assert.Equal(t, 80, last.darkness)
	assert.Equal(t, watermark.CornerTopLeft, last.corner)
}

func TestPhotoCompositeFailureKeepsOriginal(t *testing.T) {
	fake := &fakeCompositor{err: errors.New("boom")}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{R: 120, A: 255})

	res, err := ctrl.Photo(context.Background(), 1, photo)
	assert.Error(t, err)
	assert.Equal(t, ResultAck, res.Kind)

	fake.err = nil
	res, err = ctrl.SetDarkness(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)
	assert.Equal(t, photo, fake.calls[len(fake.calls)-1].original)
}

func TestLogoUploadFlow(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	logo := tinyPNG(t, color.NRGBA{R: 255, G: 255, A: 255})

	res := ctrl.RequestLogoUpload(context.Background(), 1)
	assert.True(t, res.Settings.AwaitingLogo)

	res2, err := ctrl.Photo(context.Background(), 1, logo)
	require.NoError(t, err)
	assert.Equal(t, ResultLogoPreview, res2.Kind)
	assert.Equal(t, logo, res2.Image)
	assert.False(t, res2.Settings.AwaitingLogo)
	assert.True(t, res2.Settings.HasCustomLogo)
	assert.Empty(t, fake.calls)

	// The custom logo is used from now on.
	photo := tinyPNG(t, color.NRGBA{G: 120, A: 255})
	res3, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res3.Kind)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, logo, fake.calls[0].logo)
}

func TestLogoUploadInvalidStaysAwaiting(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	ctrl.RequestLogoUpload(context.Background(), 1)
	res, err := ctrl.Photo(context.Background(), 1, []byte("junk"))
	assert.ErrorIs(t, err, watermark.ErrDecode)
	assert.Equal(t, ResultAck, res.Kind)
	assert.True(t, res.Settings.AwaitingLogo)
	assert.False(t, res.Settings.HasCustomLogo)
}

func TestLogoUploadDoesNotTouchOriginal(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	photo := tinyPNG(t, color.NRGBA{B: 90, A: 255})
	logo := tinyPNG(t, color.NRGBA{R: 90, A: 255})

	_, err := ctrl.Photo(context.Background(), 1, photo)
	require.NoError(t, err)

	ctrl.RequestLogoUpload(context.Background(), 1)
	_, err = ctrl.Photo(context.Background(), 1, logo)
	require.NoError(t, err)

	res, err := ctrl.SetDarkness(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, ResultImage, res.Kind)
	last := fake.calls[len(fake.calls)-1]
	assert.Equal(t, photo, last.original)
	assert.Equal(t, logo, last.logo)
}

func TestCancelUploadKeepsEffectiveLogo(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	ctrl.RequestLogoUpload(context.Background(), 1)
	res := ctrl.CancelUpload(context.Background(), 1)
	assert.Equal(t, ResultLogoPreview, res.Kind)
	assert.Equal(t, defaultLogo, res.Image)
	assert.False(t, res.Settings.AwaitingLogo)
	assert.False(t, res.Settings.HasCustomLogo)
}

func TestResetLogoRestoresDefault(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)
	logo := tinyPNG(t, color.NRGBA{R: 1, A: 255})

	ctrl.RequestLogoUpload(context.Background(), 1)
	_, err := ctrl.Photo(context.Background(), 1, logo)
	require.NoError(t, err)

	res := ctrl.ResetLogo(context.Background(), 1)
	assert.Equal(t, ResultLogoPreview, res.Kind)
	assert.Equal(t, defaultLogo, res.Image)
	assert.False(t, res.Settings.HasCustomLogo)
}

func TestSessionsAreIndependent(t *testing.T) {
	fake := &fakeCompositor{}
	ctrl := newTestController(fake)

	_, err := ctrl.SetDarkness(context.Background(), 1, 30)
	require.NoError(t, err)

	s := ctrl.Settings(2)
	assert.Equal(t, 60, s.Darkness)
	assert.Equal(t, 2, ctrl.SessionCount())
}
