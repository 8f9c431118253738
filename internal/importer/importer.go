// Package importer turns pasted or uploaded exercise lists into exercises.
//
// Three formats are accepted, detected from the first character:
//
//	[ {...}, ... ]      a JSON array of exercise objects
//	{...}\n{...}        JSON lines
//	question; answer    plain text, one exercise per line
//
// In plain text every part after the question is an accepted answer and the
// first one is the main answer. Malformed JSON entries are skipped.
package importer

import (
	"encoding/json"
	"strings"

	"github.com/ksalp/lernportal/internal/domain/learnset"
)

const DefaultSeparator = "; "

// Entry is one parsed exercise without ids.
type Entry struct {
	Question  string
	Answer    string
	Answers   []string
	Frequency float64
	AutoCheck int
}

// Parse reads entries from data. An empty separator means DefaultSeparator.
func Parse(data, separator string) []Entry {
	if separator == "" {
		separator = DefaultSeparator
	}

	switch {
	case strings.HasPrefix(data, "["):
		var raw []map[string]json.RawMessage
		if err := json.Unmarshal([]byte(data), &raw); err != nil {
			return nil
		}
		return parseObjects(raw)
	case strings.HasPrefix(data, "{"):
		var raw []map[string]json.RawMessage
		for _, line := range strings.Split(data, "\n") {
			line = strings.TrimRight(line, "\r")
			if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
				continue
			}
			var obj map[string]json.RawMessage
			if err := json.Unmarshal([]byte(line), &obj); err != nil {
				continue
			}
			raw = append(raw, obj)
		}
		return parseObjects(raw)
	}
	return parseText(data, separator)
}

// Apply appends entries to a learn set and returns how many were added.
// Negative frequencies become 0.
func Apply(ls *learnset.LearnSet, entries []Entry) int {
	added := 0
	for _, e := range entries {
		alternates := make([]string, 0, len(e.Answers))
		for _, a := range e.Answers {
			if a != e.Answer {
				alternates = append(alternates, a)
			}
		}
		if err := ls.AddExercise(e.Question, e.Answer, alternates...); err != nil {
			continue
		}
		last := &ls.Exercises[len(ls.Exercises)-1]
		last.Frequency = max(e.Frequency, 0)
		last.AutoCheck = e.AutoCheck
		added++
	}
	return added
}

func parseObjects(raw []map[string]json.RawMessage) []Entry {
	var out []Entry
	for _, obj := range raw {
		if e, ok := parseObject(obj); ok {
			out = append(out, e)
		}
	}
	return out
}

func parseObject(obj map[string]json.RawMessage) (Entry, bool) {
	e := Entry{Frequency: learnset.DefaultFrequency}

	if !decodeField(obj, "question", &e.Question) || !decodeField(obj, "answer", &e.Answer) {
		return Entry{}, false
	}
	if _, ok := obj["answers"]; ok && !decodeField(obj, "answers", &e.Answers) {
		return Entry{}, false
	}
	if _, ok := obj["frequency"]; ok && !decodeField(obj, "frequency", &e.Frequency) {
		return Entry{}, false
	}
	if _, ok := obj["auto_check"]; ok && !decodeField(obj, "auto_check", &e.AutoCheck) {
		return Entry{}, false
	}
	return e, true
}

func decodeField(obj map[string]json.RawMessage, key string, dst any) bool {
	raw, ok := obj[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func parseText(data, separator string) []Entry {
	var out []Entry
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		question, rest, found := strings.Cut(line, separator)
		if !found {
			continue
		}
		answers := strings.Split(rest, separator)
		out = append(out, Entry{
			Question:  question,
			Answer:    answers[0],
			Answers:   answers,
			Frequency: learnset.DefaultFrequency,
			AutoCheck: 1,
		})
	}
	return out
}
