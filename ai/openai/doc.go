// Package openai implements the ai interfaces using OpenAI-compatible APIs
// via langchaingo. It works with the OpenAI API itself as well as local
// servers speaking the same protocol (Ollama, LocalAI, vLLM).
package openai
