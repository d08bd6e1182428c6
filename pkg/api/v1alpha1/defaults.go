/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

// SetDefaults_Options normalizes opts: a negative Verbose is reset to
// 0. No field has a non-zero default; booleans already default to
// their intended meaning (false == off).
func SetDefaults_Options(opts *Options) {
	if opts.Verbose < 0 {
		opts.Verbose = 0
	}
}
