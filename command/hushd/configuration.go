// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/configuration"
)

// basic defaults (directories and files are relative to the "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "." // same directory as the config file

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "hush.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "hushd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DatabaseType - where the leveldb lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// full path to the leveldb database
func (c *Configuration) databasePath() string {
	return filepath.Join(c.DataDirectory, c.Database.Directory, c.Database.Name)
}

// read the configuration file and fill in any defaults
func getConfiguration(fileName string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(fileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "",
		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(fileName, options); err != nil {
		return nil, err
	}

	// make directories relative to the config file location
	if !filepath.IsAbs(options.DataDirectory) {
		options.DataDirectory = filepath.Join(dataDirectory, options.DataDirectory)
	}
	if !filepath.IsAbs(options.Logging.Directory) {
		options.Logging.Directory = filepath.Join(options.DataDirectory, options.Logging.Directory)
	}

	return options, nil
}
