package processor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vidmark/internal/pkg/errors"
	"vidmark/internal/pkg/logger"
	"vidmark/internal/worker/ffmpeg"
)

type Transformer struct {
	runner ffmpeg.Runner
}

func NewTransformer(runner ffmpeg.Runner) *Transformer {
	return &Transformer{runner: runner}
}

// Transform watermarks in.Video into output. The exit status decides
// success; a zero exit that leaves no output, or an empty one, still fails.
func (t *Transformer) Transform(ctx context.Context, log *logger.Logger, in Inputs, output string, o Overlay) error {
	args, err := BuildArgs(in.Video, in.Logo, output, o)
	if err != nil {
		return errors.Transform(err, "processor.transform", "failed to build ffmpeg command")
	}

	log.Debug("running ffmpeg", "args", strings.Join(args, " "))

	res, err := t.runner.Run(ctx, args)
	if err != nil {
		stderr := string(res.Stderr)
		log.Error("ffmpeg failed", "exit_code", res.ExitCode, "stderr", stderr)
		if stderr == "" {
			return errors.Transform(err, "processor.transform", "ffmpeg failed")
		}
		return errors.Transform(err, "processor.transform",
			fmt.Sprintf("ffmpeg exited with code %d: %s", res.ExitCode, stderr))
	}

	st, err := os.Stat(output)
	if err != nil {
		return errors.Transform(err, "processor.transform", "ffmpeg reported success but produced no output")
	}
	if st.Size() == 0 {
		return errors.Transform(nil, "processor.transform", "ffmpeg reported success but the output is empty")
	}
	return nil
}
