package storage

import "pairScope/internal/model"

// Storage defines a sink for pair series.
type Storage interface {
	PutPairBatch(records []PairRecord) error
}

// PairRecord is one JSONL line: a pair series tagged with the run that
// produced it.
type PairRecord struct {
	RunID      string `json:"run_id"`
	Chain      string `json:"chain"`
	VsCurrency string `json:"vs_currency"`
	model.PairSeries
}

// NewPairRecords tags every pair with run metadata, preserving pair order.
func NewPairRecords(runID, chain, vsCurrency string, pairs []model.PairSeries) []PairRecord {
	records := make([]PairRecord, len(pairs))
	for i, p := range pairs {
		records[i] = PairRecord{RunID: runID, Chain: chain, VsCurrency: vsCurrency, PairSeries: p}
	}
	return records
}
