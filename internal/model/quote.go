package model

// WatchItem is one configured symbol to track.
type WatchItem struct {
	Symbol      string `yaml:"symbol" json:"symbol"`
	DisplayName string `yaml:"name" json:"displayName"`
	Group       string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Quote is one symbol's latest close plus the previous close and derived
// percent change. A Quote is either fully populated (Ok=true) or an error
// stub carrying only Symbol, DisplayName and Error.
type Quote struct {
	Symbol      string  `json:"symbol"`
	DisplayName string  `json:"displayName"`
	Group       string  `json:"group,omitempty"`
	Date        string  `json:"date,omitempty"`
	Close       float64 `json:"close,omitempty"`
	PrevDate    string  `json:"prevDate,omitempty"`
	PrevClose   float64 `json:"prevClose,omitempty"`
	DeltaPct    float64 `json:"deltaPct"`
	Ok          bool    `json:"ok"`
	Error       string  `json:"error,omitempty"`
}

// ErrorQuote builds an error-stub Quote for a failed watch item.
func ErrorQuote(item WatchItem, err error) Quote {
	return Quote{
		Symbol:      item.Symbol,
		DisplayName: item.DisplayName,
		Group:       item.Group,
		Ok:          false,
		Error:       err.Error(),
	}
}

// TapeSnapshot is the JSON artifact consumed by the site's tape and heatmap.
type TapeSnapshot struct {
	GeneratedAt string  `json:"generatedAt"`
	Source      string  `json:"source"`
	Items       []Quote `json:"items"`
}

// ItemBySymbol returns the snapshot item for symbol, or nil.
func (s *TapeSnapshot) ItemBySymbol(symbol string) *Quote {
	if s == nil {
		return nil
	}
	for i := range s.Items {
		if s.Items[i].Symbol == symbol {
			return &s.Items[i]
		}
	}
	return nil
}
