package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// Follow streams lines appended to path onto out until ctx is done. It polls
// rather than using inotify, which also works on network filesystems where
// GC logs often land. Truncation (rotation in place) restarts from the top of
// the file. The channel is closed on return.
func Follow(ctx context.Context, path string, interval time.Duration, out chan<- string) error {
	defer close(out)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var offset int64

	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			offset += int64(len(line))
			select {
			case out <- trimNewline(line):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if err != io.EOF {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		// Partial last line: rewind so it is re-read once complete.
		if len(line) > 0 {
			if _, err := file.Seek(offset, io.SeekStart); err != nil {
				return err
			}
			reader.Reset(file)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() < offset {
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				return err
			}
			reader.Reset(file)
			offset = 0
		}
	}
}

func trimNewline(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
