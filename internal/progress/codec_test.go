package progress

import (
	"reflect"
	"testing"

	"github.com/robalobadob/magicnumbers/internal/catalog"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := catalog.MustDefault()
	states := []GameProgress{Initial(c)}
	p := Initial(c)
	for _, id := range []int{1, 2, 3, 4, 5} {
		p = Complete(p, id)
		states = append(states, p)
	}
	states = append(states, Complete(Initial(c), 4))

	for i, s := range states {
		data, err := Encode(s)
		if err != nil {
			t.Fatalf("state %d: Encode() error: %v", i, err)
		}
		got, err := Decode(data, c)
		if err != nil {
			t.Fatalf("state %d: Decode() error: %v", i, err)
		}
		if !reflect.DeepEqual(got, s) {
			t.Errorf("state %d: round trip mismatch\n got = %+v\nwant = %+v", i, got, s)
		}
	}
}

func TestEncode_RecordShape(t *testing.T) {
	data, err := Encode(Complete(Initial(catalog.MustDefault()), 1))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := `{"currentPhase":2,"phases":{` +
		`"1":{"id":1,"name":"Primeiros Passos","range":{"start":1,"end":10},"color":"blue","unlocked":true,"completed":true,"crystals":1},` +
		`"2":{"id":2,"name":"Aventura Continua","range":{"start":11,"end":20},"color":"green","unlocked":true,"completed":false,"crystals":0},` +
		`"3":{"id":3,"name":"Explorador Mágico","range":{"start":21,"end":30},"color":"orange","unlocked":false,"completed":false,"crystals":0},` +
		`"4":{"id":4,"name":"Mestre dos Números","range":{"start":31,"end":40},"color":"pink","unlocked":false,"completed":false,"crystals":0},` +
		`"5":{"id":5,"name":"Guardião Final","range":{"start":41,"end":50},"color":"purple","unlocked":false,"completed":false,"crystals":0}},` +
		`"totalCrystals":1,"completedGame":false}`
	if string(data) != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", data, want)
	}
}

func TestDecode_FallsBackToDefault(t *testing.T) {
	c := catalog.MustDefault()
	def := Initial(c)

	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "{{{"},
		{"wrong type", `[1,2,3]`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Decode([]byte(tt.data), c)
			if !reflect.DeepEqual(got, def) {
				t.Errorf("Decode(%q) = %+v, want default", tt.data, got)
			}
		})
	}
}

func TestDecode_PartialRecordKeepsAllPhases(t *testing.T) {
	c := catalog.MustDefault()
	data := `{"phases":{"1":{"id":1,"unlocked":true,"completed":true,"crystals":1}}}`

	got, err := Decode([]byte(data), c)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	checkInvariants(t, got)

	if !got.Phases[1].Completed || got.Phases[1].Crystals != 1 {
		t.Errorf("phase 1 = %+v, want completed with one crystal", got.Phases[1])
	}
	for id := 2; id <= 5; id++ {
		want := Initial(c).Phases[id]
		if got.Phases[id] != want {
			t.Errorf("phase %d = %+v, want default %+v", id, got.Phases[id], want)
		}
	}
	if got.TotalCrystals != 1 {
		t.Errorf("TotalCrystals = %d, want 1 (recomputed)", got.TotalCrystals)
	}
	if got.CurrentPhase != 1 {
		t.Errorf("CurrentPhase = %d, want default 1", got.CurrentPhase)
	}
}

func TestDecode_RecomputesDerivedFields(t *testing.T) {
	c := catalog.MustDefault()
	data := `{"currentPhase":3,"totalCrystals":42,"completedGame":true,
		"phases":{"1":{"completed":true,"crystals":1},"2":{"unlocked":true,"completed":true,"crystals":7}}}`

	got, err := Decode([]byte(data), c)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	checkInvariants(t, got)
	if got.TotalCrystals != 2 {
		t.Errorf("TotalCrystals = %d, want 2", got.TotalCrystals)
	}
	if got.CompletedGame {
		t.Error("CompletedGame should follow phase 5, not the stored flag")
	}
	if got.Phases[2].Crystals != CrystalsPerPhase {
		t.Errorf("phase 2 crystals = %d, want clamped to %d", got.Phases[2].Crystals, CrystalsPerPhase)
	}
	if got.CurrentPhase != 3 {
		t.Errorf("CurrentPhase = %d, want 3", got.CurrentPhase)
	}
}

func TestDecode_IgnoresBadEntries(t *testing.T) {
	c := catalog.MustDefault()
	data := `{"currentPhase":9,"phases":{"7":{"completed":true},"abc":{},"2":"oops","3":{"unlocked":true}}}`

	got, err := Decode([]byte(data), c)
	if err == nil {
		t.Error("Decode() should report the ignored entries")
	}
	checkInvariants(t, got)
	if got.CurrentPhase != 1 {
		t.Errorf("CurrentPhase = %d, want default 1", got.CurrentPhase)
	}
	if len(got.Phases) != 5 {
		t.Errorf("len(Phases) = %d, want 5", len(got.Phases))
	}
	if !got.Phases[3].Unlocked {
		t.Error("valid entry for phase 3 should still be merged")
	}
	if got.Phases[2].Unlocked {
		t.Error("malformed phase 2 entry should fall back to default")
	}
}

func TestDecode_StaticFieldsComeFromCatalog(t *testing.T) {
	c := catalog.MustDefault()
	data := `{"phases":{"1":{"id":9,"name":"hacked","range":{"start":0,"end":999},"color":"black"}}}`

	got, _ := Decode([]byte(data), c)
	want := Initial(c).Phases[1]
	if got.Phases[1] != want {
		t.Errorf("phase 1 = %+v, want catalog data %+v", got.Phases[1], want)
	}
}

func TestDecode_PhaseOneAlwaysUnlocked(t *testing.T) {
	got, _ := Decode([]byte(`{"phases":{"1":{"unlocked":false}}}`), catalog.MustDefault())
	if !got.Phases[1].Unlocked {
		t.Error("phase 1 must be unlocked after load")
	}
}
