package repository

import (
	"time"

	"github.com/pkg/errors"
)

// fixed width, so text comparison matches time order
const sqliteTimeLayout = "2006-01-02 15:04:05.000000-07:00"

var sqlTimeLayouts = []string{
	sqliteTimeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// sqlTime scans timestamps whether the driver hands back time.Time (lib/pq) or
// text (SQLite).
type sqlTime struct {
	time.Time
}

func (t *sqlTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return errors.New("timestamp is NULL")
	default:
		return errors.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range sqlTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return errors.Errorf("unrecognised timestamp %q", s)
}
