package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemOtpRepo_SaveOverwrites(t *testing.T) {
	repo := NewInMemoryOtpRepo()
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := repo.Save("a@x.com", OtpRecord{Code: "111111", IssuedAt: issued}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save("a@x.com", OtpRecord{Code: "222222", IssuedAt: issued.Add(time.Minute)}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, ok, err := repo.Get("a@x.com")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if rec.Code != "222222" {
		t.Fatalf("expected last write to win, got code %q", rec.Code)
	}
}

func TestMemOtpRepo_GetMissAndDelete(t *testing.T) {
	repo := NewInMemoryOtpRepo()

	if _, ok, _ := repo.Get("nobody@x.com"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := repo.Save("a@x.com", OtpRecord{Code: "111111", IssuedAt: time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete("a@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get("a@x.com"); ok {
		t.Fatal("expected record gone after delete")
	}

	// Delete of an absent key is a no-op
	if err := repo.Delete("a@x.com"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemOtpRepo_ConcurrentDistinctKeys(t *testing.T) {
	repo := NewInMemoryOtpRepo()
	issued := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("user%d@x.com", i)
			code := fmt.Sprintf("%06d", i)
			for j := 0; j < 100; j++ {
				_ = repo.Save(key, OtpRecord{Code: code, IssuedAt: issued})
				rec, ok, err := repo.Get(key)
				if err != nil || !ok || rec.Code != code {
					t.Errorf("key %s observed foreign state: ok=%v code=%q", key, ok, rec.Code)
					return
				}
			}
			_ = repo.Delete(key)
		}(i)
	}
	wg.Wait()
}

func TestMemOtpRepo_ConcurrentSameKeyLastWriteWins(t *testing.T) {
	repo := NewInMemoryOtpRepo()
	issued := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Save("a@x.com", OtpRecord{Code: fmt.Sprintf("%06d", i), IssuedAt: issued})
		}(i)
	}
	wg.Wait()

	// Whatever won, the record must be one complete write, never a mix
	rec, ok, err := repo.Get("a@x.com")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(rec.Code) != 6 {
		t.Fatalf("torn record: %q", rec.Code)
	}
}
