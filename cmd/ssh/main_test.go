package main

import "testing"

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); err != nil || w != 80 || h != 24 {
		t.Fatalf("getSize = %d,%d,%v", w, h, err)
	}
	s.update(132, 50)
	if w, h, _ := s.getSize(); w != 132 || h != 50 {
		t.Fatalf("after update getSize = %d,%d", w, h)
	}
}

func TestListenPort(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", defaultPort, false},
		{"2022", 2022, false},
		{"ssh", 0, true},
		{"0", 0, true},
		{"70000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SSH_PORT", tt.value)
			got, err := listenPort()
			if (err != nil) != tt.wantErr {
				t.Fatalf("listenPort() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("listenPort() = %d, want %d", got, tt.want)
			}
		})
	}
}
