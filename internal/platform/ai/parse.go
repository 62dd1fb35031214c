package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	errNoJSON   = errors.New("response contains no JSON object")
	leadingInt  = regexp.MustCompile(`-?\d+`)
	fenceMarker = "```"
)

// extractJSONObject strips markdown fences and returns the outermost
// {...} span of text.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, fenceMarker) {
		text = strings.TrimPrefix(text, fenceMarker)
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), fenceMarker)
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return text[start : end+1], nil
}

func parseResumeFields(text string) (ResumeFields, error) {
	out := EmptyResumeFields()
	raw, err := extractJSONObject(text)
	if err != nil {
		return out, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return out, fmt.Errorf("decode resume json: %w", err)
	}
	out.FirstName = stringField(doc["firstName"])
	out.LastName = stringField(doc["lastName"])
	out.Email = stringField(doc["email"])
	out.Phone = stringField(doc["phone"])
	out.CurrentPosition = stringField(doc["currentPosition"])
	out.Location = stringField(doc["location"])
	out.Experience = stringField(doc["experience"])
	out.Skills = stringList(doc["skills"])
	out.Education = educationList(doc["education"])
	return out, nil
}

// stringField tolerates numbers and null where a string is expected.
func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func stringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := stringField(raw); s != "" {
			for _, part := range strings.Split(s, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		return out
	}
	for _, item := range items {
		if s := stringField(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// educationList accepts a single string, an array of strings, or an array
// of objects.
func educationList(raw json.RawMessage) []Education {
	out := []Education{}
	if len(raw) == 0 {
		return out
	}
	if s := stringField(raw); s != "" {
		return append(out, Education{Degree: s})
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s := stringField(item); s != "" {
			out = append(out, Education{Degree: s})
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		e := Education{
			Degree:      stringField(obj["degree"]),
			Field:       stringField(obj["field"]),
			Institution: stringField(obj["institution"]),
		}
		if year, err := strconv.Atoi(stringField(obj["year"])); err == nil && year > 0 {
			e.Year = &year
		}
		if e.Degree == "" && e.Field == "" && e.Institution == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// parseScore accepts {"score": n} or a bare number and clamps to 0..100.
func parseScore(text string) (int, error) {
	if raw, err := extractJSONObject(text); err == nil {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			if value, ok := doc["score"]; ok {
				var f float64
				if err := json.Unmarshal(value, &f); err == nil {
					return clampScore(f), nil
				}
				if f, err := parseNumber(stringField(value)); err == nil {
					return clampScore(f), nil
				}
			}
		}
	}
	match := leadingInt.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no score in response")
	}
	f, err := parseNumber(match)
	if err != nil {
		return 0, err
	}
	return clampScore(f), nil
}

// parseNumber treats out-of-range input as the matching infinity.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// clampScore bounds f to 0..100 before rounding so the int conversion is
// always in range.
func clampScore(f float64) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 100:
		return 100
	}
	return int(math.Round(f))
}
