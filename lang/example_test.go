package lang_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/impral/lang"
)

func ExampleParse() {
	res, err := lang.Parse(context.Background(), "ls dir | grep x |! 0 +")
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(res)
	// Output: ((ls dir) | grep x |! 0 +)
}

func ExampleParse_error() {
	_, err := lang.Parse(context.Background(), "test 1 a=2 3")

	var serr *lang.SourceError
	if errors.As(err, &serr) {
		fmt.Println(serr.Snippet())
	}

	fmt.Println(errors.Is(err, lang.ErrParse))
	// Output:
	//   1 | test 1 a=2 3
	//                  ^
	// true
}

func ExampleResult_Format() {
	res, err := lang.Parse(context.Background(), "$x.[0]?")
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = res.Format(context.Background(), os.Stdout, lang.FormatTokens, 0)
	// Output:
	// 0..2 ref-var $x
	// 2..3 Dot .
	// 3..5 group [
	//   4..5 integer-number 0
	// 6..7 QuestionMark ?
}
