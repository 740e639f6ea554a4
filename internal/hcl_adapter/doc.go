// Package hcl_adapter loads pipeline definitions written in HCL and
// translates them into the format-agnostic config.Model.
//
// A pipeline file may contain any mix of `pipeline`, `demand` and `station`
// blocks; a directory of files is merged into one model. Expressions are
// evaluated with an `env` object exposing the process environment, so
// `output_dir = "${env.HOME}/out"` works.
package hcl_adapter
