package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// licenseBanner heads every generated file, verbatim.
const licenseBanner = `;
; Copyright (c) 2021 Huawei Device Co., Ltd.
; Licensed under the Apache License, Version 2.0 (the "License");
; you may not use this file except in compliance with the License.
; You may obtain a copy of the License at
;
;     http://www.apache.org/licenses/LICENSE-2.0
;
; Unless required by applicable law or agreed to in writing, software
; distributed under the License is distributed on an "AS IS" BASIS,
; WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
; See the License for the specific language governing permissions and
; limitations under the License.
;

`

// writeAnnotated writes the license banner followed by the merged sections.
func writeAnnotated(w io.Writer, merged *Merged) error {
	if _, err := io.WriteString(w, licenseBanner); err != nil {
		return fmt.Errorf("write license banner: %w", err)
	}
	if _, err := merged.WriteTo(w); err != nil {
		return fmt.Errorf("write merged sections: %w", err)
	}
	return nil
}

// saveToFile replaces path with the annotated output. The parent directory is
// created if missing, but only one level.
func saveToFile(path string, merged *Merged, logger zerolog.Logger) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if err := writeAnnotated(pendingFile, merged); err != nil {
		return err
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace output file: %w", err)
	}
	return nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("output directory %s: %w", dir, ErrNotDirectory)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("stat output directory: %w", err)
	}
}
