package storage

import (
	"encoding/json"

	"github.com/lixenwraith/routega/genetic/tracking"
)

func EncodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var r RunRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return RunRecord{}, err
	}
	return r, nil
}

func EncodeSample(s tracking.Sample) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSample(data []byte) (tracking.Sample, error) {
	var s tracking.Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return tracking.Sample{}, err
	}
	return s, nil
}
