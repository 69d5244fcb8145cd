package normalize

import (
	"log/slog"
	"sort"
	"strings"

	"tradepulse/pkg/contracts/domain"
)

// Normalizer maps raw country labels to canonical names using a fixed
// synonym table. Matching is case-insensitive and exact only; fuzzy
// matching is deliberately avoided so distinct entities are never
// silently conflated. The table is injected rather than read from
// ambient globals so tests can substitute alternate mappings.
type Normalizer struct {
	synonyms map[string]string // upper-cased raw label -> canonical name
	logger   *slog.Logger
}

// New creates a normalizer over the given synonym table.
func New(synonyms map[string]string, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}

	table := make(map[string]string, len(synonyms))
	for raw, canonical := range synonyms {
		table[strings.ToUpper(strings.TrimSpace(raw))] = canonical
	}

	return &Normalizer{synonyms: table, logger: logger}
}

// Canonical returns the canonical name for a raw label. Unmatched labels
// pass through unchanged after whitespace trimming; an unknown country is
// a valid entity, not an error.
func (n *Normalizer) Canonical(label string) string {
	trimmed := strings.TrimSpace(label)
	if canonical, ok := n.synonyms[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Apply returns a copy of records with country names standardized.
// It logs how many distinct raw labels collapsed into canonical ones;
// the count is observability only and not used downstream.
func (n *Normalizer) Apply(records []domain.TradeRecord) []domain.TradeRecord {
	before := make(map[string]struct{})
	after := make(map[string]struct{})

	out := make([]domain.TradeRecord, len(records))
	for i, r := range records {
		before[r.Country] = struct{}{}
		r.Country = n.Canonical(r.Country)
		after[r.Country] = struct{}{}
		out[i] = r
	}

	if collapsed := len(before) - len(after); collapsed > 0 {
		n.logger.Info("standardized country name variations",
			slog.Int("collapsed", collapsed),
			slog.Int("distinct_before", len(before)),
			slog.Int("distinct_after", len(after)))
	}

	return out
}

// MappingEntry reports how often a country name occurs and whether it
// came from the synonym table. Useful for spotting unmapped variations.
type MappingEntry struct {
	Country     string `json:"country"`
	RecordCount int    `json:"record_count"`
	Mapped      bool   `json:"mapped"`
}

// MappingReport returns per-label frequencies over the raw labels,
// sorted by descending count then name.
func (n *Normalizer) MappingReport(records []domain.TradeRecord) []MappingEntry {
	counts := make(map[string]int)
	for _, r := range records {
		counts[strings.TrimSpace(r.Country)]++
	}

	entries := make([]MappingEntry, 0, len(counts))
	for label, count := range counts {
		_, mapped := n.synonyms[strings.ToUpper(label)]
		entries = append(entries, MappingEntry{
			Country:     label,
			RecordCount: count,
			Mapped:      mapped,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RecordCount != entries[j].RecordCount {
			return entries[i].RecordCount > entries[j].RecordCount
		}
		return entries[i].Country < entries[j].Country
	})

	return entries
}

// DefaultSynonyms returns the built-in country name mappings for common
// variations found in USITC DataWeb exports.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		// China variations
		"CHINA, PEOPLES REPUBLIC OF": "China",
		"CHINA":                      "China",
		"CHINA, P.R.":                "China",
		"PEOPLES REPUBLIC OF CHINA":  "China",

		// Taiwan variations
		"TAIWAN":                    "Taiwan",
		"TAIWAN, PROVINCE OF CHINA": "Taiwan",
		"CHINESE TAIPEI":            "Taiwan",

		// Hong Kong
		"HONG KONG":        "Hong Kong",
		"HONG KONG SAR":    "Hong Kong",
		"HONG KONG, CHINA": "Hong Kong",

		// Korea variations
		"KOREA, SOUTH":           "South Korea",
		"KOREA, REPUBLIC OF":     "South Korea",
		"SOUTH KOREA":            "South Korea",
		"REPUBLIC OF KOREA":      "South Korea",
		"KOREA, NORTH":           "North Korea",
		"KOREA, DEM PEOPLES REP": "North Korea",

		// Vietnam
		"VIETNAM":             "Vietnam",
		"VIET NAM":            "Vietnam",
		"VIETNAM, SOC REP OF": "Vietnam",

		// Germany
		"GERMANY":                      "Germany",
		"GERMANY, FEDERAL REPUBLIC OF": "Germany",
		"GERMANY, WEST":                "Germany",
		"GERMANY, EAST":                "Germany (East)",

		// UK variations
		"UNITED KINGDOM": "United Kingdom",
		"UK":             "United Kingdom",
		"GREAT BRITAIN":  "United Kingdom",

		// Russia/USSR
		"RUSSIA":             "Russia",
		"RUSSIAN FEDERATION": "Russia",
		"USSR":               "Soviet Union",
		"SOVIET UNION":       "Soviet Union",

		"MEXICO": "Mexico",
		"CANADA": "Canada",
		"JAPAN":  "Japan",
		"INDIA":  "India",

		"UNITED STATES": "United States",
		"USA":           "United States",
		"U.S.A.":        "United States",
	}
}
