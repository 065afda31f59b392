package common

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/youta-t/flarc"
)

// IntArg parses the first value of the positional argument name as an id.
func IntArg(args map[string][]string, name string) (int, error) {
	vs := args[name]
	if len(vs) == 0 {
		return 0, errors.Join(flarc.ErrUsage, fmt.Errorf("%s is required", name))
	}
	id, err := strconv.Atoi(vs[0])
	if err != nil || id <= 0 {
		return 0, errors.Join(flarc.ErrUsage, fmt.Errorf("%s should be a positive integer: %q", name, vs[0]))
	}
	return id, nil
}

// IntArgs parses all values of the repeatable positional argument name as ids.
func IntArgs(args map[string][]string, name string) ([]int, error) {
	ids := []int{}
	for _, v := range args[name] {
		id, err := IntArg(map[string][]string{name: {v}}, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.Join(flarc.ErrUsage, fmt.Errorf("%s is required", name))
	}
	return ids, nil
}

// ReadSecret reads the first line of r, like a password piped to stdin.
func ReadSecret(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("no input")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty input")
	}
	return line, nil
}

// PageOf makes a page from --skip and --limit. Zero limit means the default.
func PageOf(skip, limit int) (admin.Page, error) {
	page := admin.DefaultPage()
	if skip < 0 || limit < 0 {
		return page, errors.Join(flarc.ErrUsage, errors.New("--skip and --limit should not be negative"))
	}
	page.Skip = skip
	if 0 < limit {
		page.Limit = limit
	}
	return page, nil
}
