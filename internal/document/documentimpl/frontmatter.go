package documentimpl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/orgball2608/insta-archiver/internal/document"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Encode writes meta as a YAML front matter block followed by body.
// Values yaml cannot marshal are reported as document.ErrEncode.
func Encode(w io.Writer, meta any, body string) error {
	fm, err := marshalFrontMatter(meta)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(delimiter + "\n")
	bw.Write(fm)
	bw.WriteString(delimiter + "\n\n")
	bw.WriteString(body)
	bw.WriteString("\n")
	return bw.Flush()
}

func marshalFrontMatter(meta any) (out []byte, err error) {
	// yaml.v3 panics on unsupported kinds such as channels and funcs.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", document.ErrEncode, r)
		}
	}()

	var fm bytes.Buffer
	enc := yaml.NewEncoder(&fm)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrEncode, err)
	}
	return fm.Bytes(), nil
}

// Decode parses a front matter document, decoding the YAML block into meta.
func Decode(data []byte, meta any) (string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, delimiter+"\n") {
		return "", fmt.Errorf("%w: missing opening delimiter", document.ErrMalformed)
	}
	rest := text[len(delimiter)+1:]

	var header, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n"):
		body = rest[len(delimiter)+1:]
	case rest == delimiter:
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n"+delimiter) {
				return "", fmt.Errorf("%w: missing closing delimiter", document.ErrMalformed)
			}
			end = len(rest) - len(delimiter) - 1
			header = rest[:end]
		} else {
			header = rest[:end]
			body = rest[end+len(delimiter)+2:]
		}
	}

	if err := yaml.Unmarshal([]byte(header), meta); err != nil {
		return "", fmt.Errorf("%w: %v", document.ErrMalformed, err)
	}

	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimSuffix(body, "\n")
	return body, nil
}
