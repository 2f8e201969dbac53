package crt

import "testing"

func TestSourceSequence(t *testing.T) {
	tests := []struct {
		platform Platform
		seed     uint32
		want     []uint32
	}{
		{Linux, 1, []uint32{1103527590, 377401575, 662824084, 1147902781, 2035015474}},
		{Linux, 0, []uint32{1103527590, 377401575}},
		{Linux, 1000000000, []uint32{1182020153, 937226366, 432863711}},
		{Windows, 1, []uint32{41, 18467, 6334, 26500, 19169}},
		{Windows, 0, []uint32{38, 7719}},
		{Windows, 1000000000, []uint32{18686, 28840, 29787}},
		{Glibc, 1, []uint32{1804289383, 846930886, 1681692777, 1714636915, 1957747793}},
		{Glibc, 0, []uint32{1804289383, 846930886}},
		{Glibc, 1000000000, []uint32{1168042403}},
		// seeds above 2^31 go through the signed seeding recurrence
		{Glibc, 0x80000000, []uint32{1336741213, 1210407648}},
		{Glibc, 0xFFFFFFFF, []uint32{254925627, 1205188300}},
	}
	for _, tt := range tests {
		s := NewSource(tt.platform)
		s.Srand(tt.seed)
		for i, want := range tt.want {
			if got := s.Rand(); got != want {
				t.Errorf("%s srand(%d) draw %d = %d, want %d", tt.platform, tt.seed, i, got, want)
			}
		}
	}
}

func TestSourceReseed(t *testing.T) {
	for _, p := range []Platform{Linux, Windows, Glibc} {
		s := NewSource(p)
		s.Srand(7)
		first := s.Rand()
		s.Rand()
		s.Srand(7)
		if got := s.Rand(); got != first {
			t.Fatalf("%s reseeded draw = %d, want %d", p, got, first)
		}
		if got := Rand(p, 7); got != first {
			t.Fatalf("Rand(%s, 7) = %d, want %d", p, got, first)
		}
	}
}

func TestNewSourceUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewSource(Platform(9)) did not panic")
		}
	}()
	NewSource(Platform(9))
}

func TestOutputRange(t *testing.T) {
	limits := map[Platform]uint32{Linux: 0x7FFFFFFF, Windows: 0x7FFF, Glibc: 0x7FFFFFFF}
	for p, limit := range limits {
		s := NewSource(p)
		s.Srand(0xFFFFFFFF)
		for i := 0; i < 10000; i++ {
			if v := s.Rand(); v > limit {
				t.Fatalf("%s draw %d = %#x exceeds %#x", p, i, v, limit)
			}
		}
	}
}

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]Platform{
		"linux": Linux, "Linux": Linux, "glibc": Glibc, "type3": Glibc,
		"windows": Windows, "WINDOWS": Windows, "msvcrt": Windows,
	} {
		got, err := ParsePlatform(in)
		if err != nil || got != want {
			t.Errorf("ParsePlatform(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePlatform("darwin"); err == nil {
		t.Error("ParsePlatform(darwin) succeeded")
	}
	if Platform(9).String() != "Platform(9)" {
		t.Errorf("unexpected String for unknown platform: %s", Platform(9))
	}
}
