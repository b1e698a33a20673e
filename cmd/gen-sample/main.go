// gen-sample is a one-shot tool that writes a matching pair of demo files:
// a bank statement CSV and a ledger XLSX. Use them to try the workbench
// without real exports at hand.
//
// Usage: go run ./cmd/gen-sample [output-dir]
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const bankCSV = `Acme Bank plc
Statement export
Current account 22-41-88

Date,Description,Amount,Reference
2024-01-10,Invoice 441 Acme Ltd,1000.00,INV-441
2024-01-11,Card settlement batch,245.80,STL-8841
2024-01-12,Coffee,-4.20,
2024-01-15,Rent January,-400.00,RENT-01
2024-01-16,Bank charges,-10.00,
`

var ledgerRows = [][]any{
	{"Date", "Narrative", "Debit", "Credit", "Journal"},
	{"2024-01-11", "Invoice 441 Acme Ltd", 1000.00, nil, "SALES"},
	{"2024-01-12", "Card settlement batch", 245.80, nil, "SALES"},
	{"2024-01-15", "Rent January", nil, 400.00, "GL"},
	{"2024-01-31", "Payroll January", nil, 5200.00, "GL"},
}

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", dir, err)
	}

	csvPath := filepath.Join(dir, "sample-bank.csv")
	if err := os.WriteFile(csvPath, []byte(bankCSV), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", csvPath, err)
	}
	log.Printf("Wrote %s", csvPath)

	xlsxPath := filepath.Join(dir, "sample-ledger.xlsx")
	if err := writeLedger(xlsxPath); err != nil {
		log.Fatalf("Failed to write %s: %v", xlsxPath, err)
	}
	log.Printf("Wrote %s", xlsxPath)
	log.Println("Load them with /load a sample-bank.csv and /load b sample-ledger.xlsx")
}

func writeLedger(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range ledgerRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
