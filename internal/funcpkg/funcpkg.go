// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package funcpkg builds the deployment archive uploaded as a function's code.
package funcpkg

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
)

const (
	// ProgramEntry is the archive name of the bundled program, the shim runs it by this name.
	ProgramEntry = "program"
	// BootstrapEntry is the archive name of the shim, the provided runtime executes it from the task root.
	BootstrapEntry = "bootstrap"

	entryMode os.FileMode = 0755
)

type entry struct {
	name string
	path string
}

// Build writes a zip archive to outputPath holding programPath as "program"
// and bootstrapPath as "bootstrap".
func Build(outputPath, programPath, bootstrapPath string) error {
	entries := []entry{
		{name: ProgramEntry, path: programPath},
		{name: BootstrapEntry, path: bootstrapPath},
	}

	for _, e := range entries {
		if err := checkRegularFile(e.path); err != nil {
			return err
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fatalerror.New(fatalerror.PackagingIOError, err)
	}

	if err := writeArchive(out, entries); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fatalerror.New(fatalerror.PackagingIOError, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return fatalerror.New(fatalerror.PackagingIOError, err)
	}

	log.WithField("archive", outputPath).Debugf("Packaged %s and %s", programPath, bootstrapPath)
	return nil
}

func checkRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fatalerror.Newf(fatalerror.LocalInputError, "cannot find %s: %w", path, err)
	}
	if info.IsDir() {
		return fatalerror.Newf(fatalerror.LocalInputError, "%s is a directory", path)
	}
	return nil
}

func writeArchive(w io.Writer, entries []entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		if err := addFile(zw, e); err != nil {
			return fmt.Errorf("failed to add %s as %s: %w", e.path, e.name, err)
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, e entry) error {
	src, err := os.Open(e.path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = e.name
	header.Method = zip.Deflate
	header.SetMode(entryMode)

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	return err
}

// Entries lists the entry names of the archive at path, in archive order.
func Entries(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fatalerror.New(fatalerror.PackagingIOError, err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}
