package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/HomeDrive/internal/models"
)

func TestFiles_States(t *testing.T) {
	tests := []struct {
		name    string
		records []models.FileRecord
		want    ListState
		msg     string
	}{
		{name: "nil", records: nil, want: ListEmpty, msg: MsgEmpty},
		{name: "empty", records: []models.FileRecord{}, want: ListEmpty, msg: MsgEmpty},
		{name: "one", records: []models.FileRecord{{ID: "1", Filename: "a.txt"}}, want: ListRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Files(tt.records, time.UTC)
			assert.Equal(t, tt.want, got.State)
			assert.Equal(t, tt.msg, got.Message)
			if tt.want != ListRows {
				assert.Empty(t, got.Rows)
			}
		})
	}
}

func TestFiles_Rows(t *testing.T) {
	got := Files([]models.FileRecord{
		{ID: "7", Filename: "report.pdf", Owner: "alice", CreatedAt: "2024-03-05T14:07:09.123456"},
		{ID: "8", Filename: "notes.md", Owner: "bob"},
	}, time.UTC)

	require.Equal(t, ListRows, got.State)
	assert.Equal(t, []FileRow{
		{ID: "7", Filename: "report.pdf", Owner: "alice", Created: "05/03/2024 14:07:09"},
		{ID: "8", Filename: "notes.md", Owner: "bob", Created: ""},
	}, got.Rows)
}

func TestLoadingAndError(t *testing.T) {
	l := LoadingFiles()
	assert.Equal(t, ListLoading, l.State)
	assert.Equal(t, MsgLoading, l.Message)
	assert.Equal(t, "files-list", l.CSSClass())

	e := FilesError("boom")
	assert.Equal(t, ListError, e.State)
	assert.Equal(t, "boom", e.Message)
	assert.Equal(t, "files-list empty", e.CSSClass())
	assert.False(t, e.HasRows())
}

func TestFormatCreated(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		in   string
		loc  *time.Location
		want string
	}{
		{in: "", loc: time.UTC, want: ""},
		{in: "2024-01-02T03:04:05", loc: time.UTC, want: "02/01/2024 03:04:05"},
		{in: "2024-01-02 03:04:05.5", loc: time.UTC, want: "02/01/2024 03:04:05"},
		{in: "2024-01-02T03:04:05Z", loc: paris, want: "02/01/2024 04:04:05"},
		{in: "2024-07-02T03:04:05+00:00", loc: paris, want: "02/07/2024 05:04:05"},
		{in: "2024-01-02T03:04:05", loc: paris, want: "02/01/2024 03:04:05"},
		{in: "yesterday", loc: time.UTC, want: "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCreated(tt.in, tt.loc))
		})
	}
}

func TestBlocked(t *testing.T) {
	empty := Blocked(nil)
	assert.Empty(t, empty.Users)
	assert.Equal(t, MsgNoBlocked, empty.Message)

	src := []string{"carol", "dave"}
	b := Blocked(src)
	assert.Equal(t, []string{"carol", "dave"}, b.Users)
	assert.Empty(t, b.Message)

	src[0] = "changed"
	assert.Equal(t, "carol", b.Users[0])
}

func TestWriteFilesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFilesText(&buf, Files([]models.FileRecord{
		{ID: "3", Filename: "a.txt", Owner: "alice", CreatedAt: "2024-01-02T03:04:05"},
	}, time.UTC)))
	assert.Equal(t, "[3] a.txt\n      Owner : alice  Créé : 02/01/2024 03:04:05\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteFilesText(&buf, LoadingFiles()))
	assert.Equal(t, MsgLoading+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteFilesText(&buf, FileList{}))
	assert.Empty(t, buf.String())
}

func TestWriteFilesHTML_Escapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFilesHTML(&buf, Files([]models.FileRecord{
		{ID: "9", Filename: `<script>x</script>'.txt`, Owner: "eve"},
	}, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, `class="file-row"`)
	assert.Contains(t, out, `data-id="9"`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestWriteFilesHTML_Message(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFilesHTML(&buf, Files(nil, time.UTC)))
	assert.Equal(t, "<p>"+MsgEmpty+"</p>\n", buf.String())
}

func TestWriteBlocked(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBlockedText(&buf, Blocked([]string{"carol", "dave"})))
	assert.Equal(t, "- carol\n- dave\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBlockedText(&buf, Blocked(nil)))
	assert.Equal(t, MsgNoBlocked+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBlockedHTML(&buf, Blocked([]string{"<b>"})))
	assert.Equal(t, "<div>&lt;b&gt;</div>", buf.String())
}
