package fileio

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadXLSX_TypedCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "20241011"))
	require.NoError(t, f.SetSheetRow("20241011", "A1", &[]any{"Acme", 1500, true, 0.95, "1.500"}))
	_, err := f.NewSheet("Outra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Outra", "B2", "x"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := Read(bytes.NewReader(buf.Bytes()), "portais.xlsx")
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "20241011", wb.Sheets[0].Name)
	assert.Equal(t, "Outra", wb.Sheets[1].Name)

	row := wb.Sheets[0].Rows[0]
	require.Len(t, row, 5)
	assert.Equal(t, Text("Acme"), row[0])
	assert.Equal(t, Number(1500), row[1])
	assert.Equal(t, Bool(true), row[2])
	assert.Equal(t, Number(0.95), row[3])
	assert.Equal(t, Text("1.500"), row[4], "text that looks like a number stays text")

	// rows keep their positions: B2 is Rows[1][1]
	other := wb.Sheets[1].Rows
	require.Len(t, other, 2)
	assert.True(t, other[1][0].IsBlank())
	assert.Equal(t, "x", other[1][1].String())
}

func TestReadCSV_SemicolonWindows1252(t *testing.T) {
	src := "Portal;Média;Status\r\nAcme;1.234,56;OK\r\n"
	enc, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	wb, err := Read(strings.NewReader(enc), "/tmp/20241011.csv")
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	sh := wb.Sheets[0]
	assert.Equal(t, "20241011", sh.Name)
	require.Len(t, sh.Rows, 2)
	assert.Equal(t, "Média", sh.Rows[0][1].String())
	assert.Equal(t, Text("1.234,56"), sh.Rows[1][1])
}

func TestReadCSV_TitleLineAboveSemicolonHeader(t *testing.T) {
	src := "Monitoramento de portais\nPortal;Volume Fonte;Status\nAcme;1.500;OK\n"
	wb, err := Read(strings.NewReader(src), "20241011.csv")
	require.NoError(t, err)

	rows := wb.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Monitoramento de portais", rows[0][0].String())
	require.Len(t, rows[1], 3)
	assert.Equal(t, "Volume Fonte", rows[1][1].String())
	assert.Equal(t, []Cell{Text("Acme"), Text("1.500"), Text("OK")}, rows[2])
}

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want rune
	}{
		{"semicolon header", "a;b;c\n1;2;3\n", ';'},
		{"comma header", "a,b,c\n1,2,3\n", ','},
		{"title then semicolons", "Relatorio\n\na;b\n1;2\n", ';'},
		{"decimal commas in semicolon rows", "Portal;Indice\nAcme;0,95\nBeta;1,5\n", ';'},
		{"decimal commas everywhere", "x;1,5;2,5\ny;3,5;4,5\n", ';'},
		{"no delimiter", "so uma coluna\n", ','},
		{"empty", "", ','},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, sniffDelimiter([]byte(c.src)), c.name)
	}
}

func TestReadCSV_UTF8CommaBOM(t *testing.T) {
	src := "\xEF\xBB\xBFBot,Status\n Acme\u00A0,OK\n,\n"
	wb, err := Read(strings.NewReader(src), "export.csv")
	require.NoError(t, err)

	rows := wb.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Bot", rows[0][0].String())
	assert.Equal(t, "Acme", rows[1][0].String())
	assert.True(t, RowBlank(rows[2]))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRead_Unsupported(t *testing.T) {
	_, err := Read(strings.NewReader("whatever"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCell(t *testing.T) {
	assert.Equal(t, "1500", Number(1500).String())
	assert.Equal(t, "0.95", Number(0.95).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, CellEmpty, Text("").Kind)
	assert.True(t, Text("   ").IsBlank())
	assert.False(t, Number(0).IsBlank())
	assert.False(t, Bool(false).IsBlank())
	assert.True(t, RowBlank(nil))
}
