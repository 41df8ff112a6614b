package commands

import (
	"errors"
	"fmt"
	"io"
	"respimg/internal/core/domain"
	"strings"

	"github.com/spf13/pflag"
)

var errMissingSource = errors.New("missing image source")

const flagUsage = "flags: --priority, --unoptimized, --blur, --quality <1-100>, --format <webp|avif|...>, " +
	"--alt <text>"

type renderArgs struct {
	source  string
	request domain.DisplayRequest
}

// parseRenderArgs parses "[source] [width [height]] [alt...]" plus flags from a command message. When
// sourceRequired is false, the first positional is only taken as source if it is an http(s) URL.
func parseRenderArgs(text string, sourceRequired bool) (renderArgs, error) {
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ra renderArgs
	var blur bool
	var alt string

	fs.BoolVarP(&ra.request.Priority, "priority", "p", false, "load eagerly with high fetch priority")
	fs.BoolVar(&ra.request.Unoptimized, "unoptimized", false, "skip the image service")
	fs.BoolVar(&blur, "blur", false, "attach a blur placeholder if available")
	fs.IntVarP(&ra.request.Quality, "quality", "q", 0, "image service quality")
	fs.StringVarP(&ra.request.Format, "format", "f", "", "image service format hint")
	fs.StringVar(&alt, "alt", "", "alternative text")

	fields := domain.ParseCommandFields(text)
	if err := rejectNegativeDimensions(fs, fields); err != nil {
		return renderArgs{}, err
	}

	if err := fs.Parse(fields); err != nil {
		return renderArgs{}, err
	}

	ra.request.Placeholder = domain.PlaceholderEmpty
	if blur {
		ra.request.Placeholder = domain.PlaceholderBlur
	}

	pos := fs.Args()

	if len(pos) > 0 && (sourceRequired || isRemote(pos[0])) {
		ra.source = pos[0]
		pos = pos[1:]
	}

	if sourceRequired && ra.source == "" {
		return renderArgs{}, errMissingSource
	}

	if len(pos) > 0 {
		if w, err := domain.ParseDimension(pos[0]); err == nil {
			ra.request.Width = w
			pos = pos[1:]

			if len(pos) > 0 {
				if h, err := domain.ParseDimension(pos[0]); err == nil {
					ra.request.Height = h
					pos = pos[1:]
				}
			}
		}
	}

	ra.request.Alt = alt
	if alt == "" {
		ra.request.Alt = strings.Join(pos, " ")
	}

	return ra, nil
}

// rejectNegativeDimensions reports positional pixel values such as "-5" as invalid display sizes, which
// pflag would otherwise read as shorthand flags. Values of flags like "-q -5" are left to pflag.
func rejectNegativeDimensions(fs *pflag.FlagSet, fields []string) error {
	skipValue := false

	for _, field := range fields {
		if skipValue {
			skipValue = false
			continue
		}

		if field == "--" {
			return nil
		}

		if !strings.HasPrefix(field, "-") || strings.Contains(field, "=") {
			continue
		}

		if _, err := domain.ParseDimension(field); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidDisplaySize, field)
		}

		var flag *pflag.Flag
		if name, ok := strings.CutPrefix(field, "--"); ok {
			flag = fs.Lookup(name)
		} else if len(field) == 2 {
			flag = fs.ShorthandLookup(field[1:])
		}

		skipValue = flag != nil && flag.Value.Type() != "bool"
	}

	return nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
