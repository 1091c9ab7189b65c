package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandscape(t *testing.T) {
	page := Landscape(A4)

	assert.Equal(t, A4.Height, page.Width)
	assert.Equal(t, A4.Width, page.Height)
	assert.Greater(t, page.Width, page.Height)
	assert.InDelta(t, 420.945, page.CenterX(), 0.001)
}

func TestDefaultFields(t *testing.T) {
	page := Landscape(A4)
	fields := DefaultFields(page)

	require.NoError(t, fields.Validate())
	assert.Equal(t, []string{KeyName, KeyCourse, KeyDate, KeyCertID}, fields.Keys())

	tests := []struct {
		key    string
		anchor Anchor
	}{
		{KeyName, Anchor{X: page.CenterX(), Y: 250, Size: 36, Center: true}},
		{KeyCourse, Anchor{X: page.CenterX(), Y: 160, Size: 22, Center: true}},
		{KeyDate, Anchor{X: 250, Y: 100, Size: 16}},
		{KeyCertID, Anchor{X: 40, Y: 40, Size: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f, ok := fields.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.anchor, f.Anchor)
		})
	}

	id, _ := fields.Lookup(KeyCertID)
	assert.Equal(t, "ID: ", id.Prefix)
}

func TestFieldsWithAnchor(t *testing.T) {
	fields := DefaultFields(Landscape(A4))
	moved := Anchor{X: 10, Y: 20, Size: 8, Center: true}

	updated, err := fields.WithAnchor(KeyDate, moved)
	require.NoError(t, err)

	got, _ := updated.Lookup(KeyDate)
	assert.Equal(t, moved, got.Anchor)

	original, _ := fields.Lookup(KeyDate)
	assert.Equal(t, Anchor{X: 250, Y: 100, Size: 16}, original.Anchor, "original table must not change")

	_, err = fields.WithAnchor("signature", moved)
	assert.Error(t, err)
}

func TestFieldsValidate(t *testing.T) {
	assert.Error(t, Fields{}.Validate())
	assert.Error(t, Fields{{Key: ""}}.Validate())
	assert.Error(t, Fields{{Key: "a"}, {Key: "a"}}.Validate())
	assert.NoError(t, Fields{{Key: "a"}, {Key: "b"}}.Validate())
}

func TestDefaulterResolve(t *testing.T) {
	g := Defaulter{
		Now:   func() time.Time { return time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC) },
		NewID: func() string { return "0a1b2c3d-4e5f-6789-abcd-ef0123456789" },
	}

	tests := []struct {
		name string
		def  Default
		want string
	}{
		{"literal", Literal("Student Name"), "Student Name"},
		{"today", Default{Kind: DefaultToday}, "2024-03-09"},
		{"uuid", Default{Kind: DefaultUUID}, "0a1b2c3d-4e5f-6789-abcd-ef0123456789"},
		{"short id", Default{Kind: DefaultShortID}, "CERT-0A1B2C3D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.def))
		})
	}
}

func TestDefaulterZeroValue(t *testing.T) {
	var g Defaulter

	a := g.Resolve(Default{Kind: DefaultUUID})
	b := g.Resolve(Default{Kind: DefaultUUID})
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)

	_, err := time.Parse(DateFormat, g.Resolve(Default{Kind: DefaultToday}))
	assert.NoError(t, err)
}

func TestParseDefaultKind(t *testing.T) {
	k, err := ParseDefaultKind(" UUID ")
	require.NoError(t, err)
	assert.Equal(t, DefaultUUID, k)

	k, err = ParseDefaultKind("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLiteral, k)

	_, err = ParseDefaultKind("tomorrow")
	assert.Error(t, err)
}
