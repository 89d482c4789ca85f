package history

import "testing"

func TestAddAndEntries(t *testing.T) {
	s := NewStore(10)
	s.Add(PartitionDefault, ':', "write")
	s.Add(PartitionDefault, ':', "quit")
	s.Add(PartitionDefault, ':', "write") // moves to most recent

	got := s.Entries(PartitionDefault, ':')
	want := []string{"quit", "write"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entries = %v, want %v", got, want)
			break
		}
	}
}

func TestPartitionsAreDistinct(t *testing.T) {
	s := NewStore(10)
	s.Add(PartitionDefault, '/', "cmd entry")
	s.Add(PartitionSearch, '/', "search entry")

	if n := s.Len(PartitionDefault, '/'); n != 1 {
		t.Errorf("default len = %d, want 1", n)
	}
	if got := s.Entries(PartitionSearch, '/'); len(got) != 1 || got[0] != "search entry" {
		t.Errorf("search entries = %v", got)
	}
}

func TestCapTrimsOldest(t *testing.T) {
	s := NewStore(2)
	s.Add(PartitionDefault, 'a', "one")
	s.Add(PartitionDefault, 'a', "two")
	s.Add(PartitionDefault, 'a', "three")

	got := s.Entries(PartitionDefault, 'a')
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("entries = %v, want [two three]", got)
	}
}

func TestIgnoresEmpty(t *testing.T) {
	s := NewStore(10)
	s.Add(PartitionDefault, 'a', "")
	s.Add(PartitionDefault, 0, "orphan")
	if n := s.Len(PartitionDefault, 'a'); n != 0 {
		t.Errorf("len = %d, want 0", n)
	}
}

func TestClear(t *testing.T) {
	s := NewStore(10)
	s.Add(PartitionDefault, 'a', "x")
	s.Clear(PartitionDefault, 'a')
	if s.Entries(PartitionDefault, 'a') != nil {
		t.Error("expected nil after Clear")
	}
}
