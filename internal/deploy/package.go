// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
	"go.amzn.com/progrunner/internal/funcpkg"
)

// Request describes one packaging and installation run.
type Request struct {
	FunctionName  string
	Role          string
	ProgramPath   string
	BootstrapPath string
	Replace       bool
	// WorkDir receives the transient <FunctionName>.zip, defaults to the current directory.
	WorkDir string
}

func (r *Request) archivePath() string {
	return filepath.Join(r.WorkDir, r.FunctionName+".zip")
}

// PackageAndInstall builds the function archive and installs it. The archive
// is removed before returning on every path.
func (i *Installer) PackageAndInstall(ctx context.Context, req Request) (*InstallResult, error) {
	if _, err := os.Stat(req.ProgramPath); err != nil {
		return nil, fatalerror.Newf(fatalerror.LocalInputError, "cannot find %s", req.ProgramPath)
	}

	archive := req.archivePath()
	defer removeArchive(archive)

	if err := funcpkg.Build(archive, req.ProgramPath, req.BootstrapPath); err != nil {
		return nil, err
	}

	log.WithField("function", req.FunctionName).Info("Installing lambda function")
	return i.Install(ctx, archive, req.FunctionName, req.Role, req.Replace)
}

func removeArchive(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithError(err).WithField("archive", path).Warn("Failed to remove function archive")
	}
}
