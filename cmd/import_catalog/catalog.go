package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogRow una fila del archivo: insumo y, opcionalmente, su stock inicial.
type catalogRow struct {
	Line             int
	Name             string
	Unit             string
	ReorderThreshold decimal.Decimal
	Quantity         decimal.Decimal // 0 = sin compra inicial
	UnitCost         decimal.Decimal
}

// readCatalog lee filas nombre;unidad;umbral[;cantidad;costo_unitario].
// Acepta UTF-8 (con o sin BOM) o Windows-1252, que es lo que exportan las planillas en español.
// La primera fila se salta si es cabecera.
func readCatalog(r io.Reader, sep rune) ([]catalogRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear CSV: %w", err)
	}
	return parseRecords(records)
}

// readCatalogXLSX lee las mismas columnas desde la primera hoja de un .xlsx.
func readCatalogXLSX(r io.Reader) ([]catalogRow, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("la planilla no tiene hojas")
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	// GetRows omite las celdas vacías al final de la fila.
	for i, rec := range records {
		if len(rec) == 4 {
			records[i] = append(rec, "")
		}
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) ([]catalogRow, error) {
	var rows []catalogRow
	for i, rec := range records {
		line := i + 1
		if i == 0 && isHeader(rec) {
			continue
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		row, err := parseRow(line, rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == "nombre" || first == "name" || first == "insumo"
}

func parseRow(line int, rec []string) (catalogRow, error) {
	if len(rec) != 3 && len(rec) != 5 {
		return catalogRow{}, fmt.Errorf("línea %d: se esperan 3 o 5 columnas, hay %d", line, len(rec))
	}
	row := catalogRow{
		Line: line,
		Name: strings.TrimSpace(rec[0]),
		Unit: strings.TrimSpace(rec[1]),
	}
	if row.Name == "" || row.Unit == "" {
		return catalogRow{}, fmt.Errorf("línea %d: nombre y unidad son requeridos", line)
	}
	var err error
	if row.ReorderThreshold, err = parseAmount(rec[2]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: umbral: %w", line, err)
	}
	if len(rec) == 5 {
		if row.Quantity, err = parseAmount(rec[3]); err != nil {
			return catalogRow{}, fmt.Errorf("línea %d: cantidad: %w", line, err)
		}
		if row.UnitCost, err = parseAmount(rec[4]); err != nil {
			return catalogRow{}, fmt.Errorf("línea %d: costo: %w", line, err)
		}
	}
	return row, nil
}

// parseAmount acepta coma o punto decimal; vacío = 0.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %q", s)
	}
	return d, nil
}
