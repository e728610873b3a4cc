package layout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/barcode"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/testutil"
)

// fixedEngine returns the default engine with a frozen clock.
func fixedEngine() *Engine {
	e := Default()
	e.Clock = testutil.NewFixedClock(time.Time{})
	return e
}

func assertGolden(t *testing.T, name string, instrs []ir.DrawInstruction) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(ir.DumpString(instrs)))
}

func TestCredentialGolden(t *testing.T) {
	assertGolden(t, "credential_sample", fixedEngine().Credential(testutil.SampleCredential()))
}

func TestBookLabelGolden(t *testing.T) {
	assertGolden(t, "book_label_sample", fixedEngine().BookLabel(testutil.SampleBookLabel()))
}

func TestCredentialDeterminism(t *testing.T) {
	e := fixedEngine()
	first := e.Credential(testutil.SampleCredential())
	second := e.Credential(testutil.SampleCredential())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("credential layout not deterministic (-first +second):\n%s", diff)
	}
}

func TestBookLabelDeterminism(t *testing.T) {
	first := BookLabel(testutil.SampleBookLabel())
	second := BookLabel(testutil.SampleBookLabel())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("label layout not deterministic (-first +second):\n%s", diff)
	}
}

func TestCredentialDateIsolatedToOneInstruction(t *testing.T) {
	rec := testutil.SampleCredential()

	monday := Default()
	monday.Clock = testutil.NewFixedClock(time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC))
	tuesday := Default()
	tuesday.Clock = testutil.NewFixedClock(time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC))

	a := monday.Credential(rec)
	b := tuesday.Credential(rec)
	assert.NotEqual(t, a, b)
	assert.Equal(t, ir.Without(a, FieldIssueDate), ir.Without(b, FieldIssueDate))

	date, ok := ir.Find(b, FieldIssueDate).(ir.TextRun)
	require.True(t, ok)
	assert.Equal(t, "Emisión: 2024-03-19", date.Content)
}

func TestCredentialIssueDateUsesUTC(t *testing.T) {
	// 23:30 in UTC-6 is already the next day in UTC.
	local := time.FixedZone("CST", -6*60*60)
	e := Default()
	e.Clock = testutil.NewFixedClock(time.Date(2024, 3, 15, 23, 30, 0, 0, local))

	date := ir.Find(e.Credential(testutil.SampleCredential()), FieldIssueDate).(ir.TextRun)
	assert.Equal(t, "Emisión: 2024-03-16", date.Content)
}

func TestCredentialWithoutPhotoKeepsFrame(t *testing.T) {
	rec := testutil.SampleCredential()
	rec.PhotoRef = ""
	instrs := fixedEngine().Credential(rec)

	frame, ok := ir.Find(instrs, FieldPhotoFrame).(ir.ClosedPolygon)
	require.True(t, ok, "photo frame must be present")
	assert.Len(t, frame.Vertices, 4)

	caption, ok := ir.Find(instrs, FieldPhotoCaption).(ir.TextRun)
	require.True(t, ok, "photo caption must be present")
	assert.Equal(t, "FOTO", caption.Content)

	withPhoto := fixedEngine().Credential(testutil.SampleCredential())
	assert.Equal(t, withPhoto, instrs, "photo reference is never read")
}

func TestCredentialFrameDrawnBeforeCaption(t *testing.T) {
	instrs := fixedEngine().Credential(testutil.SampleCredential())
	frameAt, captionAt := -1, -1
	for i, in := range instrs {
		switch in.FieldName() {
		case FieldPhotoFrame:
			frameAt = i
		case FieldPhotoCaption:
			captionAt = i
		}
	}
	assert.Less(t, frameAt, captionAt)
}

func TestEmptyRecordsRenderWithoutPanicking(t *testing.T) {
	e := fixedEngine()

	cred := e.Credential(ir.CredentialRecord{})
	assert.Empty(t, ir.Find(cred, FieldBarcode), "no ID means no bars")
	assert.Equal(t, " ", ir.Find(cred, FieldName).(ir.TextRun).Content)
	assert.NotNil(t, ir.Find(cred, FieldPhotoFrame))

	label := e.BookLabel(ir.BookLabelRecord{})
	// ID 0 is "0" (48, even): one bar.
	assert.Equal(t, "ID: 0", ir.Find(label, FieldID).(ir.TextRun).Content)
	assert.NotNil(t, ir.Find(label, FieldBarcode))
}

func TestAllCoordinatesInsidePage(t *testing.T) {
	e := fixedEngine()
	long := ir.CredentialRecord{ID: "PPL-000000000000000000000000000000000000000000000000000042", GivenName: "A", FamilyName: "B"}

	pages := []struct {
		profile ir.PageProfile
		instrs  []ir.DrawInstruction
	}{
		{ir.CredentialPage, e.Credential(testutil.SampleCredential())},
		{ir.CredentialPage, e.Credential(long)},
		{ir.BookLabelPage, e.BookLabel(testutil.SampleBookLabel())},
		{ir.BookLabelPage, e.BookLabel(ir.BookLabelRecord{ID: 9223372036854775806})},
	}
	for _, p := range pages {
		for _, in := range p.instrs {
			for _, pt := range in.Points() {
				assert.True(t, p.profile.Contains(pt), "%s %s %s outside %s", in.Kind(), in.FieldName(), pt, p.profile.Name)
			}
		}
	}
}

func TestLongIDBarsStopAtBarcodeBox(t *testing.T) {
	rec := ir.CredentialRecord{ID: "BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"} // 50 even runes
	instrs := fixedEngine().Credential(rec)

	count := 0
	for _, in := range instrs {
		if in.FieldName() == FieldBarcode {
			count++
		}
	}
	assert.Equal(t, 40, count, "40mm box holds 40 one-millimetre cells")
}

func TestLegibilityProfileGovernsSizes(t *testing.T) {
	e := fixedEngine()
	e.LabelSizes.Title = 14
	e.LabelSizes.Caption = 5

	instrs := e.BookLabel(testutil.SampleBookLabel())
	assert.Equal(t, ir.FontSize(14), ir.Find(instrs, FieldTitle).(ir.TextRun).Size)
	assert.Equal(t, ir.FontSize(5), ir.Find(instrs, FieldBarcodeCaption).(ir.TextRun).Size)
	assert.Equal(t, ir.FontSize(5), ir.Find(instrs, FieldCode128Caption).(ir.TextRun).Size)
}

func TestEnglishCaptions(t *testing.T) {
	e := fixedEngine()
	e.Captions = CaptionsEN

	instrs := e.BookLabel(testutil.SampleBookLabel())
	assert.Equal(t, "Location: C434", ir.Find(instrs, FieldLocation).(ir.TextRun).Content)

	cred := e.Credential(testutil.SampleCredential())
	assert.Equal(t, "PHOTO", ir.Find(cred, FieldPhotoCaption).(ir.TextRun).Content)
}

func TestCaptionsFor(t *testing.T) {
	c, err := CaptionsFor("")
	require.NoError(t, err)
	assert.Equal(t, CaptionsES, c)

	c, err = CaptionsFor("en")
	require.NoError(t, err)
	assert.Equal(t, "en", c.Lang)

	_, err = CaptionsFor("fr")
	assert.Error(t, err)
}

func TestCode128Symbology(t *testing.T) {
	e := fixedEngine()
	e.Symbology = barcode.Code128{}

	instrs := e.BookLabel(testutil.SampleBookLabel())
	for _, in := range instrs {
		if in.FieldName() != FieldBarcode {
			continue
		}
		stroke := in.(ir.LineStroke)
		assert.Greater(t, stroke.Width, ir.Length(0), "code128 bars carry their module width")
	}
	assert.NotNil(t, ir.Find(instrs, FieldBarcode))
}

func TestZeroEngineFallsBack(t *testing.T) {
	var e Engine
	instrs := e.BookLabel(testutil.SampleBookLabel())
	assert.NotNil(t, ir.Find(instrs, FieldBarcode))
}
