package errors

import (
	"fmt"

	gomegatypes "github.com/onsi/gomega/types"
	"github.com/rotisserie/eris"
)

// HaveInErrorChain succeeds when err appears anywhere in the actual error's chain.
// Identity follows eris: errors in the chain are compared by message, so sentinels
// declared with eris.New match after any number of eris.Wrap calls.
//
//	Expect(err).To(HaveInErrorChain(changeloggenutils.NoReleasesError))
func HaveInErrorChain(err error) gomegatypes.GomegaMatcher {
	return &errorChainMatcher{expected: err}
}

type errorChainMatcher struct {
	expected error
}

func (e *errorChainMatcher) Match(actual interface{}) (success bool, err error) {
	if actual == nil {
		return false, nil
	}

	actualError, ok := actual.(error)
	if !ok {
		return false, New("HaveInErrorChain expects an error")
	}
	return eris.Is(actualError, e.expected), nil
}

func (e *errorChainMatcher) FailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%+v\nto have\n\t%v\nin its error chain", actual, e.expected)
}

func (e *errorChainMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%+v\nnot to have\n\t%v\nin its error chain", actual, e.expected)
}
