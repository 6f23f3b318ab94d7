package logger_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/passportware/featsync/pkg/utils/logger"
)

func TestBy(t *testing.T) {
	t.Run("when it is given no options, it returns the logger as is", func(t *testing.T) {
		base := log.New(bytes.NewBuffer(nil), "base: ", 0)
		if logger.By(base) != base {
			t.Error("logger is not the passed one")
		}
	})

	t.Run("when it is given Copied, it returns a new logger writing to the same writer", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		base := log.New(buf, "base: ", 0)

		derived := logger.By(base, logger.Copied(), logger.WithPrefix("derived: "))

		if derived == base {
			t.Fatal("logger is not copied")
		}
		if base.Prefix() != "base: " {
			t.Errorf("original prefix is updated: %s", base.Prefix())
		}

		derived.Println("hello")
		if got := buf.String(); !strings.HasPrefix(got, "derived: hello") {
			t.Errorf("unexpected log line: %s", got)
		}
	})

	t.Run("when it is given WithTimestamp, it sets date and time flags", func(t *testing.T) {
		base := log.New(bytes.NewBuffer(nil), "", 0)

		derived := logger.By(base, logger.WithTimestamp())

		flags := derived.Flags()
		for name, f := range map[string]int{
			"Ldate": log.Ldate, "Ltime": log.Ltime, "Lmicroseconds": log.Lmicroseconds,
		} {
			if flags&f == 0 {
				t.Errorf("flag %s is not set", name)
			}
		}
	})
}
