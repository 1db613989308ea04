package domain

import "encoding/json"

// DecodeIndex parses a stored index document and normalizes it: dates come
// from "available_dates" (never nil), and a missing "latest" falls back to
// the head of the date list.
func DecodeIndex(data []byte) (*BriefingIndex, error) {
	var raw rawIndex
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	idx := &BriefingIndex{
		Dates:          raw.AvailableDates,
		Latest:         raw.Latest,
		DatesDetail:    raw.DatesDetail,
		TotalBriefings: raw.TotalBriefings,
		LastUpdated:    raw.LastUpdated,
	}
	if idx.Dates == nil {
		idx.Dates = []string{}
	}
	if idx.Latest == "" && len(idx.Dates) > 0 {
		idx.Latest = idx.Dates[0]
	}
	return idx, nil
}
