package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	maxRequestLineSize = 8192
	maxHeaderSize      = 1 << 20
	maxHeaderLines     = 1000
	maxURILength       = 8192
)

var (
	ErrRequestLineTooLarge = errors.New("request line too large")
	ErrHeaderTooLarge      = errors.New("headers too large")
	ErrTooManyHeaders      = errors.New("too many header lines")
	ErrURITooLong          = errors.New("URI too long")
	ErrUnexpectedEOF       = errors.New("unexpected EOF")
)

type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateDone
)

// parser incrementally parses a request head. Anything after the empty line
// that ends the headers is left unread.
type parser struct {
	state       parserState
	buffer      []byte
	headerLines int
}

func newParser() *parser {
	return &parser{
		state:  stateRequestLine,
		buffer: make([]byte, 0, 4096),
	}
}

func (p *parser) parseFromReader(reader io.Reader, req *Request, maxHeaderBytes int) error {
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = maxHeaderSize
	}

	readBuf := make([]byte, 4096)

	for p.state != stateDone {
		if len(p.buffer) > 0 {
			consumed, err := p.parse(p.buffer, req)
			if err != nil {
				return err
			}

			if consumed > 0 {
				p.buffer = p.buffer[consumed:]
				continue
			}
		}

		if len(p.buffer) >= maxHeaderBytes {
			return ErrHeaderTooLarge
		}

		n, err := reader.Read(readBuf)
		if n > 0 {
			if len(p.buffer)+n > maxHeaderBytes {
				return ErrHeaderTooLarge
			}
			p.buffer = append(p.buffer, readBuf[:n]...)
		}

		if err != nil {
			if err == io.EOF {
				if n > 0 {
					continue
				}
				return ErrUnexpectedEOF
			}
			return fmt.Errorf("read error: %w", err)
		}
	}

	return nil
}

// parse advances the state machine and returns the number of bytes consumed.
func (p *parser) parse(data []byte, req *Request) (int, error) {
	switch p.state {
	case stateRequestLine:
		return p.parseRequestLine(data, req)
	case stateHeaders:
		return p.parseHeaders(data, req)
	case stateDone:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid parser state: %d", p.state)
	}
}

func (p *parser) parseRequestLine(data []byte, req *Request) (int, error) {
	method, target, version, consumed, err := parseRequestLine(data)
	if err != nil {
		return 0, err
	}

	if consumed == 0 {
		if len(data) > maxRequestLineSize {
			return 0, ErrRequestLineTooLarge
		}
		return 0, nil
	}

	if len(target) > maxURILength {
		return 0, ErrURITooLong
	}

	path, rawQuery, err := splitTarget(target)
	if err != nil {
		return 0, err
	}

	req.Method = method
	req.Target = target
	req.Path = path
	req.RawQuery = rawQuery
	req.Query = ParseQuery(rawQuery)
	req.Version = version

	p.state = stateHeaders
	return consumed, nil
}

func (p *parser) parseHeaders(data []byte, req *Request) (int, error) {
	consumed, done, err := req.Headers.Parse(data)
	if err != nil {
		return 0, err
	}

	p.headerLines += bytes.Count(data[:consumed], crlf)
	if p.headerLines > maxHeaderLines {
		return 0, ErrTooManyHeaders
	}

	if done {
		p.state = stateDone
	}

	return consumed, nil
}
