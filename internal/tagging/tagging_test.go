package tagging

import (
	"sort"
	"testing"
)

func TestAssign(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		want     []string
	}{
		{
			"slam paper",
			"Gaussian Splatting SLAM",
			"We present simultaneous localization and mapping.",
			[]string{"SLAM"},
		},
		{
			"multiple facets",
			"Dynamic Avatar Reconstruction",
			"An animatable human body model with temporal coherence.",
			[]string{"Avatar", "Dynamic"},
		},
		{
			"matches in abstract only",
			"A Study of Scene Representation",
			"Our compression scheme prunes redundant gaussians.",
			[]string{"Compression"},
		},
		{
			"case insensitive",
			"REAL-TIME RENDERING OF SPLATS",
			"",
			[]string{"Rendering"},
		},
		{
			"word boundary respected",
			"Islamic Architecture Reconstruction",
			"",
			nil, // "slam" inside "Islamic" must not trigger SLAM
		},
		{
			"no facet fits",
			"A Survey",
			"This paper surveys the field.",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assign(tt.title, tt.abstract)
			if len(got) != len(tt.want) {
				t.Fatalf("Assign = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Assign[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAssignOutputSorted(t *testing.T) {
	got := Assign("Dynamic SLAM with Avatars", "robot navigation with lidar")
	if !sort.StringsAreSorted(got) {
		t.Errorf("Assign output not sorted: %v", got)
	}
	if len(got) < 3 {
		t.Errorf("expected at least 3 tags, got %v", got)
	}
}

func TestKnown(t *testing.T) {
	known := Known()
	if len(known) != 15 {
		t.Errorf("rule table carries %d tags, want 15", len(known))
	}
	if !sort.StringsAreSorted(known) {
		t.Errorf("Known output not sorted: %v", known)
	}

	// Every assignable tag must be in the known set.
	set := make(map[string]bool, len(known))
	for _, tag := range known {
		set[tag] = true
	}
	for _, tag := range Assign("dynamic slam avatar", "medical robot lidar mesh") {
		if !set[tag] {
			t.Errorf("Assign produced unknown tag %q", tag)
		}
	}
}
