package main

import "errors"

var errBadFlag = errors.New("invalid flag value")
