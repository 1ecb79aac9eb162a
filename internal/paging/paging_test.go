package paging

import (
	"slices"
	"testing"
)

func TestPages(t *testing.T) {
	tests := []struct {
		perPage, total, want int
	}{
		{4, 0, 0},
		{4, 1, 1},
		{4, 4, 1},
		{4, 5, 2},
		{4, 9, 3},
		{0, 9, 3},
		{1, 3, 3},
	}
	for _, tt := range tests {
		p := Pager{PerPage: tt.perPage}
		if got := p.Pages(tt.total); got != tt.want {
			t.Errorf("Pager{%d}.Pages(%d) = %d, want %d", tt.perPage, tt.total, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	p := New(4)
	tests := []struct {
		page, total        int
		wantStart, wantEnd int
	}{
		{1, 10, 0, 4},
		{2, 10, 4, 8},
		{3, 10, 8, 10},
		{4, 10, 10, 10},
		{0, 10, 0, 4},
		{1, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := p.Bounds(tt.page, tt.total)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("Bounds(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.total, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestClamp(t *testing.T) {
	p := New(4)
	tests := []struct {
		name        string
		page, total int
		want        int
	}{
		{"page still valid", 2, 5, 2},
		{"last item on page removed", 2, 4, 1},
		{"far past end", 5, 9, 3},
		{"empty list", 3, 0, 1},
		{"zero page", 0, 9, 1},
		{"growth keeps page", 1, 12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Clamp(tt.page, tt.total); got != tt.want {
				t.Errorf("Clamp(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	p := New(4)
	if got := p.Next(1, 9); got != 2 {
		t.Errorf("Next(1, 9) = %d, want 2", got)
	}
	if got := p.Next(3, 9); got != 3 {
		t.Errorf("Next(3, 9) = %d, want 3", got)
	}
	if got := p.Next(1, 0); got != 1 {
		t.Errorf("Next(1, 0) = %d, want 1", got)
	}
	if got := p.Prev(2); got != 1 {
		t.Errorf("Prev(2) = %d, want 1", got)
	}
	if got := p.Prev(1); got != 1 {
		t.Errorf("Prev(1) = %d, want 1", got)
	}
	if got := p.Goto(7, 9); got != 3 {
		t.Errorf("Goto(7, 9) = %d, want 3", got)
	}
	if got := p.Goto(-1, 9); got != 1 {
		t.Errorf("Goto(-1, 9) = %d, want 1", got)
	}
}

func TestOffset(t *testing.T) {
	p := New(4)
	if got := p.Offset(3, 1); got != 9 {
		t.Errorf("Offset(3, 1) = %d, want 9", got)
	}
	if got := p.Offset(0, 2); got != 2 {
		t.Errorf("Offset(0, 2) = %d, want 2", got)
	}
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	tests := []struct {
		page int
		want []string
	}{
		{1, []string{"a", "b", "c", "d"}},
		{2, []string{"e", "f"}},
		{3, []string{}},
	}
	for _, tt := range tests {
		got := Slice(items, tt.page, 4)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Slice(page %d) = %v, want %v", tt.page, got, tt.want)
		}
	}
}
