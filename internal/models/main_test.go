package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    FileID
		wantErr bool
	}{
		{name: "number", body: `{"id":42}`, want: "42"},
		{name: "string", body: `{"id":"a1b2"}`, want: "a1b2"},
		{name: "numeric string", body: `{"id":"7"}`, want: "7"},
		{name: "missing", body: `{}`, want: ""},
		{name: "bool", body: `{"id":false}`, wantErr: true},
		{name: "object", body: `{"id":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec FileRecord
			err := json.Unmarshal([]byte(tt.body), &rec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.ID)
		})
	}
}

func TestFileIDMarshal(t *testing.T) {
	out, err := json.Marshal(FileRecord{ID: "5", Filename: "a.txt"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":5`)

	out, err = json.Marshal(FileRecord{ID: "x9", Filename: "a.txt"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"x9"`)
}
