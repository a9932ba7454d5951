package services

import (
	"sort"
	"strings"

	"github.com/trangvt/claria/internal/models"
)

type SymptomFrequency struct {
	Symptom    string  `json:"symptom"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	TotalDays  int     `json:"total_entries"`
	Percentage float64 `json:"percentage"`
}

// SymptomDisplayName turns a symptom tag into its human-readable label.
func SymptomDisplayName(tag string) string {
	words := strings.Split(tag, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// CalculateSymptomFrequencies counts how often each vocabulary tag appears
// across the history, most frequent first. Tags never logged are omitted.
func CalculateSymptomFrequencies(history []models.PeriodEntry) []SymptomFrequency {
	counts := make(map[string]int)
	for _, entry := range history {
		seen := map[string]bool{}
		for _, tag := range entry.Symptoms {
			if !models.ValidSymptom(tag) || seen[tag] {
				continue
			}
			counts[tag]++
			seen[tag] = true
		}
	}

	frequencies := make([]SymptomFrequency, 0, len(counts))
	for tag, count := range counts {
		frequency := SymptomFrequency{
			Symptom:   tag,
			Label:     SymptomDisplayName(tag),
			Count:     count,
			TotalDays: len(history),
		}
		if len(history) > 0 {
			frequency.Percentage = float64(count) / float64(len(history)) * 100
		}
		frequencies = append(frequencies, frequency)
	}

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Symptom < frequencies[j].Symptom
	})
	return frequencies
}
