package output

import (
	"strings"

	"github.com/pkg/errors"
)

// DestPath derives the decoded file name for a source log.
//
// The last path segment is taken after splitting on '/' and then on '\', and
// "<base>.<rest>" becomes "<base>_TXT.<rest>" where base ends at the first dot.
// The result has no directory, so it lands in the working directory.
func DestPath(source string) (string, error) {
	name := source[strings.LastIndex(source, "/")+1:]
	name = name[strings.LastIndex(name, `\`)+1:]

	base, ext, ok := strings.Cut(name, ".")
	if !ok {
		return "", errors.Errorf("cannot derive destination from %q: file name has no extension", source)
	}
	return base + "_TXT." + ext, nil
}
