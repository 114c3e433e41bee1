package slides

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		want      []int
		wantErr   bool
	}{
		{"single index", "3", []int{3}, false},
		{"list", "1,3,5", []int{1, 3, 5}, false},
		{"range", "4-6", []int{4, 5, 6}, false},
		{"mixed list and ranges", "2,4-6,9", []int{2, 4, 5, 6, 9}, false},
		{"unsorted input is sorted", "9,4-6,2", []int{2, 4, 5, 6, 9}, false},
		{"whitespace tolerated", " 2 , 4 - 6 , 9 ", []int{2, 4, 5, 6, 9}, false},
		{"duplicates kept", "3,3,2-4", []int{2, 3, 3, 3, 4}, false},
		{"single-element range", "5-5", []int{5}, false},
		{"inverted range", "7-3", nil, true},
		{"zero index", "0", nil, true},
		{"negative via range", "1,-2", nil, true},
		{"non-numeric", "2,abc", nil, true},
		{"empty token", "2,,4", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.selection)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.selection, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.selection, got, tt.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	if got := All(4); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("All(4) = %v", got)
	}
	if got := All(0); len(got) != 0 {
		t.Errorf("All(0) = %v, want empty", got)
	}
}
