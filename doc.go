// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package avrocodec maps between host Go values and Avro binary encoding.
//
// A caller describes its data model once as a tree of Descriptor values
// (see descriptor.go), infers an Avro Schema from it (InferSchema), and
// then uses Write/Read to move values to and from Avro binary. Projectors
// pairing a writer schema with a different reader schema implement Avro's
// schema resolution rules.
//
// The package does not implement the Avro wire format itself; binary
// encode/decode is delegated to github.com/linkedin/goavro/v2.
package avrocodec
