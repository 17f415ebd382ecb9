package schedule

import (
	"errors"
	"reflect"
	"testing"
)

func tuesdayMorning(t *testing.T, g Grid) WeekSchedule {
	t.Helper()
	ws, err := Assign(WeekSchedule{}, g, Tuesday, "09:00", "11:00", "A")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	return ws
}

func TestDeleteBlock_ClearsOnlyClickedSlot(t *testing.T) {
	g := MustGrid(60)
	ws := tuesdayMorning(t, g)

	got, err := DeleteBlock(ws, g, Tuesday, "09:00")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}

	if s := got.Slot(Tuesday, "09:00"); !s.IsEmpty() {
		t.Errorf("Tuesday 09:00 = %+v, want empty", s)
	}
	if s := got.Slot(Tuesday, "10:00"); s != (TimeSlot{ActivityID: "A"}) {
		t.Errorf("Tuesday 10:00 = %+v, want A", s)
	}
	if s := got.Slot(Tuesday, "11:00"); s != (TimeSlot{ActivityID: "A", EndTime: "11:00"}) {
		t.Errorf("Tuesday 11:00 = %+v, want A with marker", s)
	}
}

func TestDeleteBlock_TerminalSlotLeavesResidualBlock(t *testing.T) {
	g := MustGrid(60)
	ws := tuesdayMorning(t, g)

	got, err := DeleteBlock(ws, g, Tuesday, "11:00")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}

	if s := got.Slot(Tuesday, "11:00"); !s.IsEmpty() {
		t.Errorf("Tuesday 11:00 = %+v, want empty", s)
	}
	for _, tm := range []string{"09:00", "10:00"} {
		if s := got.Slot(Tuesday, tm); s != (TimeSlot{ActivityID: "A"}) {
			t.Errorf("Tuesday %s = %+v, want A without marker", tm, s)
		}
	}
}

func TestDeleteBlock_ClearsMatchingMarkerOnNextSlot(t *testing.T) {
	g := MustGrid(60)
	ws := WeekSchedule{
		Tuesday: {
			"09:00": {ActivityID: "A"},
			"10:00": {ActivityID: "A", EndTime: "09:00"},
		},
	}

	got, err := DeleteBlock(ws, g, Tuesday, "09:00")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if s := got.Slot(Tuesday, "10:00"); s != (TimeSlot{ActivityID: "A"}) {
		t.Errorf("Tuesday 10:00 = %+v, want A with marker cleared", s)
	}
}

func TestDeleteBlock_MarkerCheckWrapsToNextDay(t *testing.T) {
	g := MustGrid(60)
	ws := WeekSchedule{
		Sunday: {"23:00": {ActivityID: "A"}},
		Monday: {"00:00": {ActivityID: "A", EndTime: "23:00"}},
	}

	got, err := DeleteBlock(ws, g, Sunday, "23:00")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if s := got.Slot(Sunday, "23:00"); !s.IsEmpty() {
		t.Errorf("Sunday 23:00 = %+v, want empty", s)
	}
	if s := got.Slot(Monday, "00:00"); s != (TimeSlot{ActivityID: "A"}) {
		t.Errorf("Monday 00:00 = %+v, want A with marker cleared", s)
	}
}

func TestDeleteBlock_UnrelatedMarkerKept(t *testing.T) {
	g := MustGrid(60)
	ws := WeekSchedule{
		Tuesday: {
			"09:00": {ActivityID: "A"},
			"10:00": {ActivityID: "B", EndTime: "10:00"},
		},
	}

	got, err := DeleteBlock(ws, g, Tuesday, "09:00")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if s := got.Slot(Tuesday, "10:00"); s != (TimeSlot{ActivityID: "B", EndTime: "10:00"}) {
		t.Errorf("Tuesday 10:00 = %+v, want untouched", s)
	}
}

func TestDeleteBlock_EmptySlotIsNoop(t *testing.T) {
	g := MustGrid(30)
	ws := WeekSchedule{Friday: {"12:00": {ActivityID: "A", EndTime: "12:00"}}}

	got, err := DeleteBlock(ws, g, Friday, "08:30")
	if err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if !reflect.DeepEqual(got, ws) {
		t.Errorf("DeleteBlock() = %v, want %v", got, ws)
	}
}

func TestDeleteBlock_DoesNotMutateInput(t *testing.T) {
	g := MustGrid(60)
	ws := tuesdayMorning(t, g)
	snapshot := ws.Clone()

	if _, err := DeleteBlock(ws, g, Tuesday, "10:00"); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if !reflect.DeepEqual(ws, snapshot) {
		t.Errorf("DeleteBlock mutated its input")
	}
}

func TestDeleteBlock_Errors(t *testing.T) {
	g := MustGrid(60)
	ws := tuesdayMorning(t, g)

	if _, err := DeleteBlock(ws, g, "Tues", "09:00"); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("error = %v, want ErrInvalidDay", err)
	}
	if _, err := DeleteBlock(ws, g, Tuesday, "09:30"); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("error = %v, want ErrInvalidTime", err)
	}
}
