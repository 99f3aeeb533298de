// Package codec serializes experiment records and the experiment index to
// the UTF-8 JSON wire format the storage contract already holds. The format
// is field-tagged, so decoding tolerates fields added by newer writers.
//
// The package also implements the placeholder encryption envelope. The
// envelope marks a payload as encrypted without providing confidentiality;
// its only contract is the wrap/unwrap round trip, so a real scheme can be
// substituted later without touching the registry logic.
package codec
