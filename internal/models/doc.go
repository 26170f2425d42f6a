// Package models lists the OpenAI chat models available to an API key so
// users can pick one for the openai translation provider.
package models
