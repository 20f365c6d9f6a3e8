/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package ingest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/cidr"
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	sourceArgs  = "args"
	sourceFile  = "file"
	sourceStdin = "stdin"

	stdinArg   = "-"
	filePrefix = "@"
)

type Ingester struct {
	strict  bool
	stdin   io.Reader
	metrics *metrics
}

func NewIngester(opMetrics *operational.Metrics, params api.IngestOptions, stdin io.Reader) *Ingester {
	log.Debugf("entering NewIngester")
	return &Ingester{
		strict:  params.Strict,
		stdin:   stdin,
		metrics: newMetrics(opMetrics),
	}
}

// Ingest reads the command arguments into a new set.
//
// A single argument is either "-" for standard input, "@path" for a file, an address, subnet
// or range, or else the path of an existing file. Several arguments are each an address,
// subnet or range.
func (i *Ingester) Ingest(args []string) (*cidr.Tree, error) {
	log.Debugf("entering Ingest, %d arguments", len(args))
	tree := &cidr.Tree{}
	if err := i.IngestInto(tree, args); err != nil {
		return nil, err
	}
	return tree, nil
}

func (i *Ingester) IngestInto(tree *cidr.Tree, args []string) error {
	defer func() { i.metrics.subnets.Set(float64(tree.Len())) }()

	if len(args) != 1 {
		for _, arg := range args {
			if err := i.insertToken(tree, arg); err != nil {
				i.metrics.error(sourceArgs, "parse")
				return err
			}
			i.metrics.tokens.WithLabelValues(sourceArgs).Inc()
		}
		return nil
	}

	arg := args[0]
	switch {
	case arg == stdinArg:
		return i.IngestReader(tree, i.stdin, sourceStdin, "stdin")
	case strings.HasPrefix(arg, filePrefix) && len(arg) > len(filePrefix):
		return i.ingestFile(tree, arg[len(filePrefix):])
	case isToken(arg):
		if err := i.insertToken(tree, arg); err != nil {
			i.metrics.error(sourceArgs, "parse")
			return err
		}
		i.metrics.tokens.WithLabelValues(sourceArgs).Inc()
		return nil
	}
	if _, err := os.Stat(arg); err == nil {
		return i.ingestFile(tree, arg)
	}
	i.metrics.error(sourceArgs, "parse")
	return errors.Errorf("failed to parse input: %s", arg)
}

func (i *Ingester) ingestFile(tree *cidr.Tree, fileName string) error {
	log.Debugf("input file name = %s", fileName)
	file, err := os.Open(fileName)
	if err != nil {
		i.metrics.error(sourceFile, "open")
		return errors.Wrapf(err, "failed to open file '%s'", fileName)
	}
	defer func() {
		_ = file.Close()
	}()
	return i.IngestReader(tree, file, sourceFile, fileName)
}

// IngestReader tokenizes r and inserts every token into tree. name is used in error messages.
func (i *Ingester) IngestReader(tree *cidr.Tree, r io.Reader, source, name string) error {
	t := newTokenizer()
	scanner := t.scanner(bufio.NewScanner(r))
	count := 0
	for scanner.Scan() {
		if err := i.insertToken(tree, scanner.Text()); err != nil {
			i.metrics.error(source, "parse")
			return errors.Wrapf(err, "%s: %s", name, t.tokenPos)
		}
		i.metrics.tokens.WithLabelValues(source).Inc()
		count++
	}
	if err := scanner.Err(); err != nil {
		var charErr *InvalidCharError
		switch {
		case errors.As(err, &charErr):
			i.metrics.error(source, "invalid_character")
		case errors.Is(err, bufio.ErrTooLong):
			i.metrics.error(source, "token_too_long")
			return errors.Wrapf(err, "%s: %s", name, t.pos)
		default:
			i.metrics.error(source, "read")
		}
		return errors.Wrapf(err, "%s", name)
	}
	log.WithField("source", name).Infof("ingested %d tokens, %d subnets stored", count, tree.Len())
	return nil
}

func isToken(text string) bool {
	if strings.Contains(text, "-") {
		_, err := cidr.ParseRange(text)
		return err == nil
	}
	_, err := cidr.Parse(text)
	return err == nil
}

func (i *Ingester) insertToken(tree *cidr.Tree, token string) error {
	if strings.Contains(token, "-") {
		r, err := cidr.ParseRange(token)
		if err != nil {
			return err
		}
		return tree.InsertRange(r)
	}

	parse := cidr.Parse
	if i.strict {
		parse = cidr.ParseStrict
	}
	s, err := parse(token)
	if err != nil {
		return err
	}
	_, err = tree.Insert(s)
	return err
}
