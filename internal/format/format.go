// Copyright 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package format is the generic value-formatting toolbox any module's
// Formatter tokens can reach for: byte sizes, transfer rates, and
// durations, shared rather than reimplemented per module.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/martinlindhe/unit"
)

// Bytesize formats a size in SI units, e.g. Bytesize(10*unit.Megabyte) == "10 MB".
func Bytesize(v unit.Datasize) string {
	return humanize.Bytes(uint64(v.Bytes()))
}

// IBytesize formats a size in IEC units, e.g. IBytesize(10*unit.Mebibyte) == "10 MiB".
func IBytesize(v unit.Datasize) string {
	return humanize.IBytes(uint64(v.Bytes()))
}

// Byterate formats a transfer rate in SI units, e.g. "10 MB/s".
func Byterate(v unit.Datarate) string {
	return fmt.Sprintf("%s/s", humanize.Bytes(uint64(v.BytesPerSecond())))
}

// IByterate formats a transfer rate in IEC units, e.g. "10 MiB/s".
func IByterate(v unit.Datarate) string {
	return fmt.Sprintf("%s/s", humanize.IBytes(uint64(v.BytesPerSecond())))
}

// Duration formats d as its two most significant units, the way a clock or
// uptime-style module reports elapsed time: "1d 4h", "2h 9m", "5m 30s",
// "42s".
func Duration(d time.Duration) string {
	switch {
	case d.Hours() >= 24:
		days := int(d.Hours()) / 24
		hours := int(d.Hours()) % 24
		return fmt.Sprintf("%dd %dh", days, hours)
	case d.Minutes() >= 60:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case d.Seconds() >= 60:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
