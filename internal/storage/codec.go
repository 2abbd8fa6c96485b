package storage

import (
	"encoding/json"
	"errors"

	"queensga/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeSolutions(solutions []model.SolutionRecord) ([]byte, error) {
	return json.Marshal(solutions)
}

func DecodeSolutions(data []byte) ([]model.SolutionRecord, error) {
	var solutions []model.SolutionRecord
	if err := json.Unmarshal(data, &solutions); err != nil {
		return nil, err
	}
	for _, solution := range solutions {
		if err := checkVersion(solution.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return solutions, nil
}

func EncodeFitnessHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeFitnessHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
