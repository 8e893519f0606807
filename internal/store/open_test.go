package store

import (
	"testing"

	"git.sr.ht/~jakintosh/tasklist/internal/config"
	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory uuid", config.Config{Store: config.StoreMemory, IDScheme: config.IDSchemeUUID}, false},
		{"sqlite counter", config.Config{Store: config.StoreSQLite, SQLiteDSN: ":memory:", IDScheme: config.IDSchemeCounter}, false},
		{"bad store", config.Config{Store: "redis", IDScheme: config.IDSchemeUUID}, true},
		{"bad ids", config.Config{Store: config.StoreMemory, IDScheme: "clock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, closeFn, err := Open(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer closeFn()

			tr, err := s.Dispatch(domain.Add{Text: "A", Category: domain.General})
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if len(tr.Next.Tasks) != 1 || tr.Next.Tasks[0].ID == "" {
				t.Errorf("Tasks: got %+v", tr.Next.Tasks)
			}
		})
	}
}
