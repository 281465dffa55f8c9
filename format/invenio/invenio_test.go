package invenio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/hub"
)

func sampleRecord() *hub.Record {
	person, _ := hub.NewPerson("Jane", "Doe", hub.Identifier{Identifier: "0000-0001-2345-6789", Scheme: hub.SchemeORCID})
	return &hub.Record{
		Title:           "Example – v1.0.0",
		PublicationDate: "2024-03-15",
		ResourceType:    &hub.VocabID{ID: hub.ResourceSoftware},
		Creators:        []hub.RoleAssignment{{PersonOrOrg: person}},
		Description:     `<a href="https://example.org">notes</a>`,
		Version:         "1.0.0",
	}
}

func TestSerializeEnvelope(t *testing.T) {
	var buf bytes.Buffer
	err := (&Format{}).Serialize(&buf, []*hub.Record{sampleRecord()}, nil)
	require.NoError(t, err)

	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	md := out["metadata"]
	require.NotNil(t, md)
	assert.Equal(t, "2024-03-15", md["publication_date"])
	assert.NotContains(t, md, "subjects", "absent fields are omitted")
	assert.NotContains(t, md, "rights")
	assert.Contains(t, buf.String(), `<a href=`, "HTML is not escaped")
}

func TestSerializeBare(t *testing.T) {
	var buf bytes.Buffer
	err := (&Format{}).Serialize(&buf, []*hub.Record{sampleRecord()}, &format.SerializeOptions{Bare: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), `{"creators"`))
}

func TestParseReadsSerializedRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{sampleRecord()}, nil))

	records, err := (&Format{}).Parse(&buf, &format.ParseOptions{Strict: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sampleRecord(), records[0])
	assert.True(t, hub.Validate(records[0], hub.DefaultValidationOptions()).IsValid())
}

func TestParseStrictRequiresMetadata(t *testing.T) {
	_, err := (&Format{}).Parse(strings.NewReader(`{"title": "x"}`), &format.ParseOptions{Strict: true})
	require.Error(t, err)

	records, err := (&Format{}).Parse(strings.NewReader(`{"title": "x"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "x", records[0].Title)
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	assert.True(t, f.CanParse([]byte(`{"metadata": {"publication_date": "2024-01-01"}}`)))
	assert.False(t, f.CanParse([]byte(`{"@type": "SoftwareSourceCode"}`)))
}
