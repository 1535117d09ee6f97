package repository

import (
	"sync"
)

type memOtpRepo struct {
	data sync.Map // thread-safe map keyed by email
}

// NewInMemoryOtpRepo returns the in-process OTP store. Records live for the
// process lifetime; staleness is judged by the caller at validation time, so
// there is no background janitor here. Abandoned records linger until the next
// operation for that key touches them.
func NewInMemoryOtpRepo() OtpRepository {
	return &memOtpRepo{}
}

func (r *memOtpRepo) Save(key string, rec OtpRecord) error {
	r.data.Store(key, rec)
	return nil
}

func (r *memOtpRepo) Get(key string) (OtpRecord, bool, error) {
	val, ok := r.data.Load(key)
	if !ok {
		return OtpRecord{}, false, nil
	}
	return val.(OtpRecord), true, nil
}

func (r *memOtpRepo) Delete(key string) error {
	r.data.Delete(key)
	return nil
}
