package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ExerciseEntry is one exercise of a training day.
type ExerciseEntry struct {
	Exercise     string  `bson:"exercise" json:"exercise"`
	TargetMuscle string  `bson:"target_muscle" json:"target_muscle"`
	BodyPart     string  `bson:"body_part" json:"body_part"` // the requested label, e.g. "triceps"
	Sets         string  `bson:"sets" json:"sets"`
	Reps         string  `bson:"reps" json:"reps"`
	RestTime     string  `bson:"rest_time" json:"rest_time"`
	VideoURL     *string `bson:"video_url" json:"video_url"` // nil when no link is known
}

// DayPlan is the ordered exercise list of one training day.
type DayPlan struct {
	Day       string
	Exercises []ExerciseEntry
}

// Schedule is the weekly plan in day order. It is encoded as an object keyed
// by day label ({"Day 1": [...], "Day 2": [...]}) with the order preserved.
type Schedule []DayPlan

// Day returns the plan for label.
func (s Schedule) Day(label string) (DayPlan, bool) {
	for _, d := range s {
		if d.Day == label {
			return d, true
		}
	}
	return DayPlan{}, false
}

// Days lists the day labels in order.
func (s Schedule) Days() []string {
	days := make([]string, len(s))
	for i, d := range s {
		days[i] = d.Day
	}
	return days
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Day)
		if err != nil {
			return nil, err
		}
		entries := d.Exercises
		if entries == nil {
			entries = []ExerciseEntry{}
		}
		val, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("schedule: expected a JSON object")
	}

	out := Schedule{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		day, ok := tok.(string)
		if !ok {
			return fmt.Errorf("schedule: unexpected key %v", tok)
		}
		var entries []ExerciseEntry
		if err = dec.Decode(&entries); err != nil {
			return fmt.Errorf("schedule day %q: %w", day, err)
		}
		if entries == nil {
			entries = []ExerciseEntry{}
		}
		out = append(out, DayPlan{Day: day, Exercises: entries})
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalBSONValue stores the schedule as an embedded document keyed by day.
func (s Schedule) MarshalBSONValue() (bsontype.Type, []byte, error) {
	doc := make(bson.D, 0, len(s))
	for _, d := range s {
		entries := d.Exercises
		if entries == nil {
			entries = []ExerciseEntry{}
		}
		doc = append(doc, bson.E{Key: d.Day, Value: entries})
	}
	return bson.MarshalValue(doc)
}

func (s *Schedule) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	doc, ok := raw.DocumentOK()
	if !ok {
		return fmt.Errorf("schedule: expected embedded document, got %s", t)
	}
	elems, err := doc.Elements()
	if err != nil {
		return err
	}
	out := make(Schedule, 0, len(elems))
	for _, e := range elems {
		var entries []ExerciseEntry
		if err := e.Value().Unmarshal(&entries); err != nil {
			return fmt.Errorf("schedule day %q: %w", e.Key(), err)
		}
		if entries == nil {
			entries = []ExerciseEntry{}
		}
		out = append(out, DayPlan{Day: e.Key(), Exercises: entries})
	}
	*s = out
	return nil
}

// Progress records per-day completion.
type Progress map[string]bool

// PlanDocument is the persisted recommendation payload.
type PlanDocument struct {
	Schedule Schedule `bson:"schedule" json:"schedule"`
	Progress Progress `bson:"progress" json:"progress"`
}
