package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RecoveryAshes/sitemapcheck/internal/utils"
	"github.com/andybalholm/brotli"
)

var gzipMagic = []byte{0x1f, 0x8b}

// ErrSitemapTooLarge 站点地图(解压后)超过 MaxSitemapSize
var ErrSitemapTooLarge = fmt.Errorf("站点地图超过 %d 字节上限", MaxSitemapSize)

// readLimited 最多读取 MaxSitemapSize 字节, 超出时返回 ErrSitemapTooLarge
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSitemapSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSitemapSize {
		return nil, ErrSitemapTooLarge
	}
	return data, nil
}

// decompressResponse 根据Content-Encoding头部解压响应体
// 支持 gzip, deflate, br (Brotli) 三种压缩格式
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip", "x-gzip":
		return gunzip(body)

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decompressed, err := readLimited(reader)
		if err != nil {
			return nil, decodeError("deflate", err)
		}
		return decompressed, nil

	case "br":
		decompressed, err := readLimited(brotli.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, decodeError("brotli", err)
		}
		return decompressed, nil

	case "", "identity":
		return body, nil

	default:
		utils.Warnf("未知的Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}

// decodeSitemapBody 解压传输编码后, 再处理 .xml.gz 形式的gzip站点地图文件
func decodeSitemapBody(contentEncoding string, body []byte) ([]byte, error) {
	decoded, err := decompressResponse(contentEncoding, body)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(decoded, gzipMagic) {
		return gunzip(decoded)
	}
	return decoded, nil
}

func gunzip(body []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gzip解压失败: %w", err)
	}
	defer reader.Close()

	decompressed, err := readLimited(reader)
	if err != nil {
		return nil, decodeError("gzip", err)
	}
	return decompressed, nil
}

func decodeError(format string, err error) error {
	if errors.Is(err, ErrSitemapTooLarge) {
		return err
	}
	return fmt.Errorf("%s读取失败: %w", format, err)
}
