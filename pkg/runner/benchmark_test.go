package runner_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/runner"
)

func BenchmarkProcessContent(b *testing.B) {
	var sb strings.Builder
	for i := range 200 {
		fmt.Fprintf(&sb, "import { f%d } from '../../lib/f%d'\n", i, i)
	}
	for range 50 {
		sb.WriteString(pageSrc[strings.Index(pageSrc, "export"):])
	}
	src := sb.String()

	p, err := runner.NewProcessor(config.NewConfig(), nil)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for range b.N {
		if _, err := p.ProcessContent(ctx, "app/page.ts", src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun(b *testing.B) {
	dir := b.TempDir()
	files := make(map[string]string, 100)
	for i := range 100 {
		files[fmt.Sprintf("app/p%03d.ts", i)] = pageFixed
	}
	writeFiles(b, dir, files)

	p, err := runner.NewProcessor(config.NewConfig(), nil)
	if err != nil {
		b.Fatal(err)
	}
	r := runner.New(p)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := r.Run(ctx, runner.Options{WorkingDir: dir}); err != nil {
			b.Fatal(err)
		}
	}
}
