package components

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "empty"},
		{KindPrey, "ant"},
		{KindPredator, "doodlebug"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if KindNone.IsOrganism() || !KindPrey.IsOrganism() || !KindPredator.IsOrganism() {
		t.Error("IsOrganism mismatch")
	}
}

func TestFieldValue(t *testing.T) {
	org := &Organism{ID: 7, Kind: KindPredator, BirthTick: 3, BreedCounter: 2}
	pos := Position{Row: 1, Col: 4}

	if got := FieldValue("age", pos, org, &Hunger{StarveCounter: 1}, 10); got != "7" {
		t.Errorf("age = %q, want 7", got)
	}
	if got := FieldValue("position", pos, org, nil, 0); got != "1,4" {
		t.Errorf("position = %q, want 1,4", got)
	}
	if got := FieldValue("starve", pos, org, nil, 0); got != "-" {
		t.Errorf("starve without hunger = %q, want -", got)
	}
	if got := FieldValue("starve", pos, org, &Hunger{StarveCounter: 2}, 0); got != "2" {
		t.Errorf("starve = %q, want 2", got)
	}
}

func TestPositionOffset(t *testing.T) {
	tests := []struct {
		dr, dc int
		want   Position
	}{
		{-1, 0, Position{Row: 1, Col: 4}},
		{1, 0, Position{Row: 3, Col: 4}},
		{0, -1, Position{Row: 2, Col: 3}},
		{0, 1, Position{Row: 2, Col: 5}},
	}
	p := Position{Row: 2, Col: 4}
	for _, tt := range tests {
		if got := p.Offset(tt.dr, tt.dc); got != tt.want {
			t.Errorf("Offset(%d, %d) = %+v, want %+v", tt.dr, tt.dc, got, tt.want)
		}
	}
	if got := (Position{}).Offset(-1, 0); got.Row != -1 {
		t.Errorf("Offset off the top edge = %+v, want row -1", got)
	}
}
