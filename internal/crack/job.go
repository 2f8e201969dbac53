package crack

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Jx2f/AribasRand/pkg/crypto/crt"
)

// ParseJob decodes a job such as
//
//	{"platform":"linux","from":999999000,"to":1000001000,
//	 "observations":[{"modulus":"1000","value":"779"}]}
//
// Moduli and values are decimal strings or JSON numbers.
func ParseJob(data string) (*Job, error) {
	if !gjson.Valid(data) {
		return nil, errors.New("invalid job json")
	}
	doc := gjson.Parse(data)
	job := new(Job)
	var err error
	if job.Platform, err = crt.ParsePlatform(doc.Get("platform").String()); err != nil {
		return nil, errors.Wrap(err, "job platform")
	}
	if job.From, err = timestamp(doc.Get("from")); err != nil {
		return nil, errors.Wrap(err, "job from")
	}
	if job.To, err = timestamp(doc.Get("to")); err != nil {
		return nil, errors.Wrap(err, "job to")
	}
	for i, o := range doc.Get("observations").Array() {
		m, ok := integer(o.Get("modulus"))
		if !ok {
			return nil, errors.Errorf("observation %d: bad modulus %q", i, o.Get("modulus").Raw)
		}
		v, ok := integer(o.Get("value"))
		if !ok {
			return nil, errors.Errorf("observation %d: bad value %q", i, o.Get("value").Raw)
		}
		job.Observations = append(job.Observations, Observation{Modulus: m, Value: v})
	}
	return job, nil
}

func timestamp(r gjson.Result) (uint32, error) {
	v, ok := integer(r)
	if !ok || v.Sign() < 0 || !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, errors.Errorf("bad timestamp %q", r.Raw)
	}
	return uint32(v.Uint64()), nil
}

func integer(r gjson.Result) (*big.Int, bool) {
	switch r.Type {
	case gjson.String:
		return new(big.Int).SetString(r.Str, 10)
	case gjson.Number:
		return new(big.Int).SetString(r.Raw, 10)
	}
	return nil, false
}
