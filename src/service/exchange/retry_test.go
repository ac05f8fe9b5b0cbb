package exchange

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrierStopsAfterMaxRetries(t *testing.T) {
	assertion := assert.New(t)

	retrier := Retrier{
		MaxRetries: 4,
		Delay:      time.Millisecond,
	}

	attempts := 0
	expected := errors.New("venue is down")

	err := retrier.Do("BITH11", func() error {
		attempts++

		return expected
	})

	assertion.Equal(expected, err)
	assertion.Equal(5, attempts)
}

func TestRetrierReturnsOnFirstSuccess(t *testing.T) {
	assertion := assert.New(t)

	retrier := Retrier{
		MaxRetries: 4,
		Delay:      time.Millisecond,
	}

	attempts := 0

	err := retrier.Do("BITH11", func() error {
		attempts++

		return nil
	})

	assertion.Nil(err)
	assertion.Equal(1, attempts)
}

func TestRetrierRecoversFromTransientFailures(t *testing.T) {
	assertion := assert.New(t)

	retrier := Retrier{
		MaxRetries: 4,
		Delay:      time.Millisecond,
	}

	attempts := 0

	err := retrier.Do("BITH11", func() error {
		attempts++

		if attempts < 3 {
			return errors.New("timeout")
		}

		return nil
	})

	assertion.Nil(err)
	assertion.Equal(3, attempts)
}
